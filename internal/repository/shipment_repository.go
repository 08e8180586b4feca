package repository

import (
	"context"

	"app/internal/domain/model"
)

type ShipmentRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.Shipment, error)
	UpdateStatusByOrderID(ctx context.Context, orderID int64, status model.ShipmentStatus) error
}
