package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func (r *InvoiceGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Invoice{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceGormRepository) MarkPaid(ctx context.Context, orderID int64, paidAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":  model.InvoiceStatusPaid,
			"paid_at": paidAt,
		})

	if res.Error != nil {
		return res.Error
	}
	//請求書の行が無い注文はここで失敗→トランザクションごと巻き戻す
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InvoiceGormRepository) MarkCancelled(ctx context.Context, orderID int64, cancelledAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":       model.InvoiceStatusCancelled,
			"cancelled_at": cancelledAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InvoiceGormRepository) MarkExpired(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("order_id = ?", orderID).
		Update("status", model.InvoiceStatusExpired)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
