package models

import (
	"time"
)

// Purchase is the durable record of a completed sale. BuyerUserID is nil for
// a "dummy" purchase created by back office correction before the real buyer
// is attached. A user holds at most one purchase per (item, item type); the
// composite unique index enforces that at the schema, and NULL buyers are
// exempt so multiple dummy purchases of one item can coexist.
type Purchase struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerUserID    *int      `gorm:"column:buyer_user_id;uniqueIndex:idx_purchase_buyer_item" json:"buyer_user_id"`
	ItemID         int       `gorm:"column:item_id;not null;index;uniqueIndex:idx_purchase_buyer_item" json:"item_id"`
	ItemType       string    `gorm:"column:item_type;size:20;not null;uniqueIndex:idx_purchase_buyer_item" json:"item_type"`
	ReferrerUserID *int      `gorm:"column:referrer_user_id;index" json:"referrer_user_id"`
	Amount         float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Discount       float64   `gorm:"column:discount;type:decimal(20,2);default:0.00" json:"discount"`
	CouponCode     string    `gorm:"column:coupon_code;size:64" json:"coupon_code"`
	CouponType     string    `gorm:"column:coupon_type;size:20" json:"coupon_type"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
