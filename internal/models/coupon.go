package models

import (
	"time"
)

const (
	CouponFlat       = "flat"
	CouponPercentage = "percentage"
)

type Coupon struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string    `gorm:"column:code;size:64;not null;uniqueIndex" json:"code"`
	Type          string    `gorm:"column:type;size:20;default:flat" json:"type"`
	Discount      float64   `gorm:"column:discount;type:decimal(20,2);not null" json:"discount"`
	MinPurchase   *float64  `gorm:"column:min_purchase;type:decimal(20,2)" json:"min_purchase"`
	RemainingUses int       `gorm:"column:remaining_uses;default:0" json:"remaining_uses"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}
