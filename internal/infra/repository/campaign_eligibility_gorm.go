package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type CampaignEligibilityGormRepository struct {
	db *gorm.DB
}

func NewCampaignEligibilityGormRepository(db *gorm.DB) *CampaignEligibilityGormRepository {
	return &CampaignEligibilityGormRepository{db: db}
}

func (r *CampaignEligibilityGormRepository) CreateBulk(ctx context.Context, rows []model.CampaignEligibility) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *CampaignEligibilityGormRepository) ListByCampaignID(ctx context.Context, campaignID int64) ([]model.CampaignEligibility, error) {
	var rows []model.CampaignEligibility
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CampaignEligibilityGormRepository) DeleteByCampaignID(ctx context.Context, campaignID int64) error {
	return r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Delete(&model.CampaignEligibility{}).Error
}
