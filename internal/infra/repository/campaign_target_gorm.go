package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type CampaignTargetGormRepository struct {
	db *gorm.DB
}

func NewCampaignTargetGormRepository(db *gorm.DB) *CampaignTargetGormRepository {
	return &CampaignTargetGormRepository{db: db}
}

func (r *CampaignTargetGormRepository) CreateBulk(ctx context.Context, targets []model.CampaignTarget) error {
	if len(targets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&targets).Error
}

func (r *CampaignTargetGormRepository) ListByCampaignID(ctx context.Context, campaignID int64) ([]model.CampaignTarget, error) {
	var rows []model.CampaignTarget
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CampaignTargetGormRepository) DeleteByCampaignID(ctx context.Context, campaignID int64) error {
	//0件削除もOK（全置き換え更新で使う）
	return r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Delete(&model.CampaignTarget{}).Error
}
