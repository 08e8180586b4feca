package repository

import "context"

// キャンペーン対象の実在チェック用。渡したIDのうち実在するものを返す。
// CRUD本体は管理画面の別系統なのでここでは約束しない。

type ProductRepository interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type CategoryRepository interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type SupplierRepository interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type PetRepository interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
