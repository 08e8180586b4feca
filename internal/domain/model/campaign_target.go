package model

import "errors"

// TargetRef はメモリ上での対象参照。タグ＋ID1個なので
// 「2個埋まっている/0個」の不正な状態を作れない。
type TargetRef struct {
	Type TargetType
	ID   int64
}

// CampaignTarget はDB上の対象行。外部キー列は対象種別ごとにnullableで持ち、
// 親のtarget_typeに対応する1列だけがnon-null。
type CampaignTarget struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID int64 `gorm:"not null;index" json:"campaign_id"`

	ProductID  *int64 `gorm:"index" json:"product_id,omitempty"`
	CategoryID *int64 `gorm:"index" json:"category_id,omitempty"`
	SupplierID *int64 `gorm:"index" json:"supplier_id,omitempty"`
	PetID      *int64 `gorm:"index" json:"pet_id,omitempty"`
	PromoID    *int64 `gorm:"index" json:"promo_id,omitempty"`
}

var ErrInvalidTargetType = errors.New("invalid target type")

// NewCampaignTarget はTargetRefから行を作る唯一の入口。
// ここを通る限り必ず1列だけが埋まる。
func NewCampaignTarget(campaignID int64, ref TargetRef) (CampaignTarget, error) {
	t := CampaignTarget{CampaignID: campaignID}
	id := ref.ID

	switch ref.Type {
	case TargetTypeProducts:
		t.ProductID = &id
	case TargetTypeCategories:
		t.CategoryID = &id
	case TargetTypeSuppliers:
		t.SupplierID = &id
	case TargetTypePets:
		t.PetID = &id
	case TargetTypePromos:
		t.PromoID = &id
	default:
		//DETAILは対象行を持たない
		return CampaignTarget{}, ErrInvalidTargetType
	}

	return t, nil
}

// Ref はDB行をTargetRefに戻す。不正な行（0列/複数列）はok=falseになる。
func (t CampaignTarget) Ref() (TargetRef, bool) {
	var refs []TargetRef
	if t.ProductID != nil {
		refs = append(refs, TargetRef{Type: TargetTypeProducts, ID: *t.ProductID})
	}
	if t.CategoryID != nil {
		refs = append(refs, TargetRef{Type: TargetTypeCategories, ID: *t.CategoryID})
	}
	if t.SupplierID != nil {
		refs = append(refs, TargetRef{Type: TargetTypeSuppliers, ID: *t.SupplierID})
	}
	if t.PetID != nil {
		refs = append(refs, TargetRef{Type: TargetTypePets, ID: *t.PetID})
	}
	if t.PromoID != nil {
		refs = append(refs, TargetRef{Type: TargetTypePromos, ID: *t.PromoID})
	}

	if len(refs) != 1 {
		return TargetRef{}, false
	}
	return refs[0], true
}
