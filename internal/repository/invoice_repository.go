package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type InvoiceRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.Invoice, error)

	//支払い確定。paid_atも同時に書く。
	MarkPaid(ctx context.Context, orderID int64, paidAt time.Time) error

	//キャンセル。cancelled_atも同時に書く。
	MarkCancelled(ctx context.Context, orderID int64, cancelledAt time.Time) error

	//支払い期限切れ
	MarkExpired(ctx context.Context, orderID int64) error
}
