package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64          `gorm:"not null;index" json:"category_id"`
	SupplierID int64          `gorm:"not null;index" json:"supplier_id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Price      int64          `gorm:"not null" json:"price"`
	IsActive   bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
