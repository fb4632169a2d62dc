package models

import (
	"time"
)

// PaymentRecord stores one row per gateway order, upserted across retried
// webhook deliveries. AmountPaise is the gateway's minor-unit figure and is
// kept apart from the catalog-priced Purchase.Amount.
type PaymentRecord struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID          string    `gorm:"column:order_id;size:64;not null;uniqueIndex" json:"order_id"`
	PaymentID        string    `gorm:"column:payment_id;size:64;index" json:"payment_id"`
	PurchaseID       *int      `gorm:"column:purchase_id;index" json:"purchase_id"`
	Status           string    `gorm:"column:status;size:32;not null" json:"status"`
	Provider         string    `gorm:"column:provider;size:32;default:razorpay" json:"provider"`
	Method           string    `gorm:"column:method;size:32" json:"method"`
	UtrID            string    `gorm:"column:utr_id;size:64" json:"utr_id"`
	VPA              string    `gorm:"column:vpa;size:128" json:"vpa"`
	Email            string    `gorm:"column:email;size:255" json:"email"`
	Contact          string    `gorm:"column:contact;size:32" json:"contact"`
	Currency         string    `gorm:"column:currency;size:8" json:"currency"`
	AmountPaise      int64     `gorm:"column:amount_paise" json:"amount_paise"`
	FeePaise         int64     `gorm:"column:fee_paise" json:"fee_paise"`
	TaxPaise         int64     `gorm:"column:tax_paise" json:"tax_paise"`
	ErrorCode        string    `gorm:"column:error_code;size:64" json:"error_code"`
	ErrorDescription string    `gorm:"column:error_description;type:text" json:"error_description"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
