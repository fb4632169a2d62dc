package models

import (
	"time"
)

type User struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Phone     string    `gorm:"column:phone;size:20;not null" json:"phone"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	RefCode   string    `gorm:"column:ref_code;size:32;not null;uniqueIndex" json:"ref_code"`
	IsAdmin   bool      `gorm:"column:is_admin;default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// TempUser holds unconfirmed buyer credentials for a checkout started by a
// visitor who has no account yet. Promoted to a User only when the payment
// settles; a later checkout with the same email overwrites it in place.
type TempUser struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Phone     string    `gorm:"column:phone;size:20" json:"phone"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TempUser) TableName() string {
	return "temp_users"
}
