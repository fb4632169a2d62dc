package models

import (
	"time"
)

const (
	ItemTypeCourse = "course"
	ItemTypeEbook  = "ebook"
)

// Course and EBook are the catalog collaborators. Commission is a fixed
// amount configured per item, not a percentage of price.
type Course struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	Commission  float64   `gorm:"column:commission;type:decimal(20,2);default:0.00" json:"commission"`
	Thumbnail   string    `gorm:"column:thumbnail;size:512" json:"thumbnail"`
	Visible     bool      `gorm:"column:visible;default:true" json:"visible"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

type EBook struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Author      string    `gorm:"column:author;size:255" json:"author"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	Commission  float64   `gorm:"column:commission;type:decimal(20,2);default:0.00" json:"commission"`
	PDF         string    `gorm:"column:pdf;size:512" json:"pdf"`
	Thumbnail   string    `gorm:"column:thumbnail;size:512" json:"thumbnail"`
	Visible     bool      `gorm:"column:visible;default:true" json:"visible"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EBook) TableName() string {
	return "e_books"
}
