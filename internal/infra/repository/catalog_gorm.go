package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

// 対象エンティティの実在チェックだけを持つ薄いリポジトリ群。
// 形が同じなのでpluckを共通化する。

func pluckExistingIDs(ctx context.Context, db *gorm.DB, dst interface{}, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	var found []int64
	err := db.WithContext(ctx).Model(dst).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return pluckExistingIDs(ctx, r.db, &model.Product{}, ids)
}

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return pluckExistingIDs(ctx, r.db, &model.Category{}, ids)
}

type SupplierGormRepository struct {
	db *gorm.DB
}

func NewSupplierGormRepository(db *gorm.DB) *SupplierGormRepository {
	return &SupplierGormRepository{db: db}
}

func (r *SupplierGormRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return pluckExistingIDs(ctx, r.db, &model.Supplier{}, ids)
}

type PetGormRepository struct {
	db *gorm.DB
}

func NewPetGormRepository(db *gorm.DB) *PetGormRepository {
	return &PetGormRepository{db: db}
}

func (r *PetGormRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return pluckExistingIDs(ctx, r.db, &model.Pet{}, ids)
}
