package models

import (
	"time"
)

// CallbackLog keeps an audit copy of every webhook delivery, whatever its
// outcome. Old rows move to ArchivedCallbackLog on a nightly sweep.
type CallbackLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Request       string    `gorm:"column:request;type:longtext" json:"request"`
	Response      string    `gorm:"column:response;type:longtext" json:"response"`
	Status        int       `gorm:"column:status;default:0" json:"status"`
	RequestType   string    `gorm:"column:request_type;size:255" json:"request_type"`
	TransactionID string    `gorm:"column:transaction_id;size:255;index" json:"transaction_id"`
	Provider      string    `gorm:"column:provider;size:64" json:"provider"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CallbackLog) TableName() string {
	return "callback_logs"
}

type ArchivedCallbackLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Request       string    `gorm:"column:request;type:longtext" json:"request"`
	Response      string    `gorm:"column:response;type:longtext" json:"response"`
	Status        int       `gorm:"column:status;default:0" json:"status"`
	RequestType   string    `gorm:"column:request_type;size:255" json:"request_type"`
	TransactionID string    `gorm:"column:transaction_id;size:255;index" json:"transaction_id"`
	Provider      string    `gorm:"column:provider;size:64" json:"provider"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	ArchivedAt    time.Time `gorm:"column:archived_at;autoCreateTime" json:"archived_at"`
}

func (ArchivedCallbackLog) TableName() string {
	return "archived_callback_logs"
}
