package repository

import (
	"context"

	"app/internal/domain/model"
)

type UserRepository interface {
	// IDからユーザーを1件取得する（token_versionガード用）。
	FindByID(ctx context.Context, userID int64) (*model.User, error)

	//渡したIDのうち実在するものを返す（対象者チェック用）
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
