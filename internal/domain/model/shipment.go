package model

import "time"

// 配送業者側の語彙に合わせたステータス
type ShipmentStatus string

const (
	ShipmentStatusConfirmed  ShipmentStatus = "CONFIRMED"
	ShipmentStatusAllocated  ShipmentStatus = "ALLOCATED"
	ShipmentStatusPickingUp  ShipmentStatus = "PICKING_UP"
	ShipmentStatusDelivering ShipmentStatus = "DELIVERING"
	ShipmentStatusDelivered  ShipmentStatus = "DELIVERED"
	ShipmentStatusCancelled  ShipmentStatus = "CANCELLED"
)

// 注文と1:1
type Shipment struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64          `gorm:"not null;uniqueIndex" json:"order_id"`
	TrackingCode string         `gorm:"type:varchar(100)" json:"tracking_code"`
	Status       ShipmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
