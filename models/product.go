package models

import (
	"time"
)

const DefaultDescription = "No description yet!"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:50;unique;not null" json:"name"`
	Slug        string    `gorm:"size:60;uniqueIndex;not null" json:"slug"` // always derived from Name, never client-supplied
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Price       uint      `gorm:"not null;default:0" json:"price"`
	StockIn     bool      `gorm:"default:false" json:"stock_in"`
	Photo       string    `json:"photo"`
	Description string    `gorm:"not null" json:"description"`
	Comments    []Comment `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
