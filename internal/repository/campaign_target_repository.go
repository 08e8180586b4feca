package repository

import (
	"context"

	"app/internal/domain/model"
)

type CampaignTargetRepository interface {
	CreateBulk(ctx context.Context, targets []model.CampaignTarget) error
	ListByCampaignID(ctx context.Context, campaignID int64) ([]model.CampaignTarget, error)
	//全置き換え更新・削除用
	DeleteByCampaignID(ctx context.Context, campaignID int64) error
}
