package model

import "time"

// キャンペーン操作、注文ステータス更新など。
type AuditAction string

const (
	//キャンペーンを作成した操作。
	AuditActionCreateCampaign AuditAction = "CREATE_CAMPAIGN"
	//キャンペーンを更新した操作。
	AuditActionUpdateCampaign AuditAction = "UPDATE_CAMPAIGN"
	//キャンペーンを有効/無効にした操作。
	AuditActionToggleCampaign AuditAction = "TOGGLE_CAMPAIGN"
	//キャンペーンを削除した操作。
	AuditActionDeleteCampaign AuditAction = "DELETE_CAMPAIGN"
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

// 何に対する操作か
type AuditResourceType string

const (
	//キャンペーンに対する操作。
	AuditResourceCampaign AuditResourceType = "campaign"

	//注文に対する操作。
	AuditResourceOrder AuditResourceType = "order"

	//ユーザーに対する操作。
	AuditResourceUser AuditResourceType = "user"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	//IDは監査ログの主キー
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザー（主に管理者）のID。
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	//Actionは操作の種類（CREATE_CAMPAIGN / UPDATE_ORDER_STATUS など）。
	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（campaign / order / user）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID）。
	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//JSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	//作成時刻
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
