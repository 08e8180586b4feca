package repository

import (
	"context"

	"app/internal/domain/model"
)

type CampaignEligibilityRepository interface {
	CreateBulk(ctx context.Context, rows []model.CampaignEligibility) error
	ListByCampaignID(ctx context.Context, campaignID int64) ([]model.CampaignEligibility, error)
	DeleteByCampaignID(ctx context.Context, campaignID int64) error
}
