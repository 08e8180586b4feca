package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ShipmentGormRepository struct {
	db *gorm.DB
}

func NewShipmentGormRepository(db *gorm.DB) *ShipmentGormRepository {
	return &ShipmentGormRepository{db: db}
}

func (r *ShipmentGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) UpdateStatusByOrderID(ctx context.Context, orderID int64, status model.ShipmentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("order_id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	//配送行が無い古い注文はここで失敗→トランザクションごと巻き戻す
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
