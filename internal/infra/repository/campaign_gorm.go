package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CampaignGormRepository struct {
	db *gorm.DB
}

func NewCampaignGormRepository(db *gorm.DB) *CampaignGormRepository {
	return &CampaignGormRepository{db: db}
}

func (r *CampaignGormRepository) FindByID(ctx context.Context, campaignID int64) (model.Campaign, error) {
	var c model.Campaign
	err := r.db.WithContext(ctx).Where("id = ?", campaignID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Campaign{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignGormRepository) FindByIDAndKind(ctx context.Context, campaignID int64, kind model.CampaignKind) (model.Campaign, error) {
	var c model.Campaign
	err := r.db.WithContext(ctx).
		Where("id = ? AND kind = ?", campaignID, kind).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Campaign{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignGormRepository) ListByKind(ctx context.Context, kind model.CampaignKind, f repo.CampaignListFilter) ([]model.Campaign, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Campaign{}).Where("kind = ?", kind)

	//名前絞り込み
	if f.Q != "" {
		q = q.Where("name LIKE ?", "%"+f.Q+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Campaign{}, 0, err
	}

	var items []model.Campaign
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("id desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Campaign{}, 0, err
	}

	return items, total, nil
}

func (r *CampaignGormRepository) Create(ctx context.Context, c model.Campaign) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *CampaignGormRepository) Update(ctx context.Context, c model.Campaign) error {
	res := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":             c.Name,
			"code":             c.Code,
			"start_at":         c.StartAt,
			"end_at":           c.EndAt,
			"target_type":      c.TargetType,
			"eligibility_type": c.EligibilityType,
			"minimum_type":     c.MinimumType,
			"minimum_value":    c.MinimumValue,
			"limit_use":        c.LimitUse,
			"limit_once":       c.LimitOnce,
			"value_type":       c.ValueType,
			"value":            c.Value,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CampaignGormRepository) UpdateWindow(ctx context.Context, campaignID int64, startAt time.Time, endAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", campaignID).
		Updates(map[string]interface{}{
			"start_at": startAt,
			"end_at":   endAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CampaignGormRepository) Delete(ctx context.Context, campaignID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", campaignID).Delete(&model.Campaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CampaignGormRepository) ExistingIDsByKind(ctx context.Context, kind model.CampaignKind, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	var found []int64
	err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("kind = ? AND id IN ?", kind, ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}
