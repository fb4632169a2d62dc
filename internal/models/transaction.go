package models

import (
	"time"
)

// PendingTransaction stages a checkout between order creation and the gateway
// webhook. Exactly one row per gateway order id; the settlement engine deletes
// it inside the same transaction that creates the Purchase.
type PendingTransaction struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID  string    `gorm:"column:transaction_id;size:64;not null;uniqueIndex" json:"transaction_id"`
	ItemID         int       `gorm:"column:item_id;not null" json:"item_id"`
	ItemType       string    `gorm:"column:item_type;size:20;not null" json:"item_type"`
	ReferrerUserID *int      `gorm:"column:referrer_user_id" json:"referrer_user_id"`
	// BuyerUserID points at users.id for returning buyers and at temp_users.id
	// while IsNewBuyer is set.
	BuyerUserID *int      `gorm:"column:buyer_user_id" json:"buyer_user_id"`
	IsNewBuyer  bool      `gorm:"column:is_new_buyer;default:false" json:"is_new_buyer"`
	Amount      float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Discount    float64   `gorm:"column:discount;type:decimal(20,2);default:0.00" json:"discount"`
	CouponCode  string    `gorm:"column:coupon_code;size:64" json:"coupon_code"`
	CouponType  string    `gorm:"column:coupon_type;size:20" json:"coupon_type"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PendingTransaction) TableName() string {
	return "pending_transactions"
}
