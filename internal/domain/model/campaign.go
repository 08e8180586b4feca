package model

import "time"

// バナー/プロモ/割引/送料無料の4種類
type CampaignKind string

const (
	CampaignKindBanner       CampaignKind = "BANNER"
	CampaignKindPromo        CampaignKind = "PROMO"
	CampaignKindDiscount     CampaignKind = "DISCOUNT"
	CampaignKindFreeShipping CampaignKind = "FREE_SHIPPING"
)

// ステータスは保存しない。常にstart_at/end_atから導出する。
type CampaignStatus string

const (
	CampaignStatusScheduled CampaignStatus = "SCHEDULED"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusExpired   CampaignStatus = "EXPIRED"
)

// キャンペーンが何を対象にするか
type TargetType string

const (
	TargetTypeProducts   TargetType = "PRODUCTS"
	TargetTypeCategories TargetType = "CATEGORIES"
	TargetTypeSuppliers  TargetType = "SUPPLIERS"
	TargetTypePets       TargetType = "PETS"
	TargetTypePromos     TargetType = "PROMOS"
	//DETAILは外部キーを持たない（バナー自身の詳細ページ）
	TargetTypeDetail TargetType = "DETAIL"
)

// 割引/送料無料だけが使う対象者の制限
type EligibilityType string

const (
	EligibilityTypeUser EligibilityType = "USER"
	EligibilityTypeRole EligibilityType = "ROLE"
	EligibilityTypeNone EligibilityType = "NONE"
)

// 最低条件（数量 or 金額）
type MinimumType string

const (
	MinimumTypeQuantity MinimumType = "QUANTITY"
	MinimumTypeAmount   MinimumType = "AMOUNT"
	MinimumTypeNone     MinimumType = "NONE"
)

// 割引の値の種類
type DiscountValueType string

const (
	DiscountValueFixed      DiscountValueType = "FIXED"
	DiscountValuePercentage DiscountValueType = "PERCENTAGE"
)

type Campaign struct {
	ID   int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind CampaignKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	Name string       `gorm:"type:varchar(255);not null" json:"name"`
	//割引/送料無料のクーポンコード
	Code string `gorm:"type:varchar(50);index" json:"code,omitempty"`

	//ライフサイクルはこの2つのタイムスタンプだけ。statusカラムは持たない。
	StartAt time.Time  `gorm:"not null" json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	TargetType TargetType `gorm:"type:varchar(20);not null" json:"target_type"`

	//割引/送料無料のみ。その他はNONE固定。
	EligibilityType EligibilityType `gorm:"type:varchar(10);not null;default:'NONE'" json:"eligibility_type"`
	MinimumType     MinimumType     `gorm:"type:varchar(10);not null;default:'NONE'" json:"minimum_type"`
	MinimumValue    *int64          `json:"minimum_value,omitempty"`

	//利用回数の上限（nullは無制限）と1人1回フラグ
	LimitUse  *int64 `json:"limit_use,omitempty"`
	LimitOnce bool   `gorm:"not null;default:false" json:"limit_once"`

	//割引のみ
	ValueType DiscountValueType `gorm:"type:varchar(10)" json:"value_type,omitempty"`
	Value     *int64            `json:"value,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// CampaignStatusAt は保存済みタイムスタンプから現在のステータスを導出する。
// nowは必ず呼び出し側が渡す（内部でtime.Now()しない）。1リクエスト内は同じnowを使うこと。
func CampaignStatusAt(now time.Time, startAt time.Time, endAt *time.Time) CampaignStatus {
	//end < start の壊れたウィンドウはエラーにせずEXPIRED扱い
	if endAt != nil && endAt.Before(startAt) {
		return CampaignStatusExpired
	}
	if now.Before(startAt) {
		return CampaignStatusScheduled
	}
	if endAt == nil || !now.After(*endAt) {
		return CampaignStatusActive
	}
	return CampaignStatusExpired
}

// StatusAt はCampaignStatusAtの呼び出し
func (c Campaign) StatusAt(now time.Time) CampaignStatus {
	return CampaignStatusAt(now, c.StartAt, c.EndAt)
}
