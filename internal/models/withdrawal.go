package models

import (
	"time"
)

const (
	WithdrawalPending = "pending"
	WithdrawalSuccess = "success"
	WithdrawalFailed  = "failed"
)

// Withdrawal is created in pending state with the amount already debited from
// the account. An admin sets the terminal status exactly once; any terminal
// status other than success refunds the pre-debited amount.
type Withdrawal struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID   int       `gorm:"column:account_id;not null;index" json:"account_id"`
	Amount      float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status      string    `gorm:"column:status;size:20;default:pending;index" json:"status"`
	Destination string    `gorm:"column:destination;size:20;not null" json:"destination"` // "bank" or "upi"
	Explanation string    `gorm:"column:explanation;type:text" json:"explanation"`
	UpdatedBy   string    `gorm:"column:updated_by;size:150" json:"updated_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// BankAccount is the saved bank payout destination, at most one per account.
type BankAccount struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID     int       `gorm:"column:account_id;not null;uniqueIndex" json:"account_id"`
	BankName      string    `gorm:"column:bank_name;size:150" json:"bank_name"`
	AccountNumber string    `gorm:"column:account_number;size:64;not null" json:"account_number"`
	IFSCCode      string    `gorm:"column:ifsc_code;size:20" json:"ifsc_code"`
	AccountName   string    `gorm:"column:account_name;size:150" json:"account_name"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}

// UPIAccount is the saved UPI payout destination, at most one per account.
type UPIAccount struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID int       `gorm:"column:account_id;not null;uniqueIndex" json:"account_id"`
	UPIID     string    `gorm:"column:upi_id;size:128;not null" json:"upi_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UPIAccount) TableName() string {
	return "upi_accounts"
}
