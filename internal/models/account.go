package models

import (
	"time"
)

// Account is the affiliate ledger account, one per user. Balance is the
// withdrawable amount and never goes below zero; TotalEarnings only grows,
// and only through commission credits.
type Account struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Balance       float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	TotalEarnings float64   `gorm:"column:total_earnings;type:decimal(20,2);default:0.00" json:"total_earnings"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
