package models

import (
	"time"
)

// AffiliateLink is unique per (user, item, item type). It never changes after
// creation; activity accrues through its owned click and purchase events.
type AffiliateLink struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int       `gorm:"column:user_id;not null;uniqueIndex:idx_link_user_item" json:"user_id"`
	ItemID    int       `gorm:"column:item_id;not null;uniqueIndex:idx_link_user_item" json:"item_id"`
	ItemType  string    `gorm:"column:item_type;size:20;not null;uniqueIndex:idx_link_user_item" json:"item_type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Clicks    []AffiliateLinkClick    `gorm:"foreignKey:LinkID" json:"clicks,omitempty"`
	Purchases []AffiliateLinkPurchase `gorm:"foreignKey:LinkID" json:"purchases,omitempty"`
}

func (AffiliateLink) TableName() string {
	return "affiliate_links"
}

// AffiliateLinkClick is an append-only visit event.
type AffiliateLinkClick struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	LinkID    int       `gorm:"column:link_id;not null;index" json:"link_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AffiliateLinkClick) TableName() string {
	return "affiliate_link_clicks"
}

// AffiliateLinkPurchase records one commission credit attributable to the
// link. Immutable once written.
type AffiliateLinkPurchase struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	LinkID    int       `gorm:"column:link_id;not null;index" json:"link_id"`
	Amount    float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AffiliateLinkPurchase) TableName() string {
	return "affiliate_link_purchases"
}
