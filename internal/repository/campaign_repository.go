package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type CampaignListFilter struct {
	Page  int
	Limit int
	//名前の部分一致
	Q string
}

type CampaignRepository interface {
	FindByID(ctx context.Context, campaignID int64) (model.Campaign, error)
	//kindが違うIDは「存在しない扱い」にする
	FindByIDAndKind(ctx context.Context, campaignID int64, kind model.CampaignKind) (model.Campaign, error)
	ListByKind(ctx context.Context, kind model.CampaignKind, f CampaignListFilter) ([]model.Campaign, int64, error)
	Create(ctx context.Context, c model.Campaign) (int64, error)
	Update(ctx context.Context, c model.Campaign) error

	//有効/無効の切り替えはこの2つのタイムスタンプ更新だけ
	UpdateWindow(ctx context.Context, campaignID int64, startAt time.Time, endAt *time.Time) error

	Delete(ctx context.Context, campaignID int64) error

	//渡したIDのうち実在するものを返す（PROMOS対象の整合性チェック用）
	ExistingIDsByKind(ctx context.Context, kind model.CampaignKind, ids []int64) ([]int64, error)
}
