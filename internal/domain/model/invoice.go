package model

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusExpired   InvoiceStatus = "EXPIRED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// 注文と1:1。支払い/キャンセルは注文・配送と同一トランザクションで動かす。
type Invoice struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	Number      string        `gorm:"type:varchar(50);not null;uniqueIndex" json:"number"`
	Amount      int64         `gorm:"not null" json:"amount"`
	Status      InvoiceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	PaidAt      *time.Time    `json:"paid_at"`
	CancelledAt *time.Time    `json:"cancelled_at"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
