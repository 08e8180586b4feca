package model

// EligibilityRef はメモリ上での対象者参照（特定ユーザー or ロール）。
type EligibilityRef struct {
	Type   EligibilityType
	UserID int64
	Role   Role
}

// CampaignEligibility はDB上の対象者行。user_id/roleのどちらか一方だけが埋まる。
type CampaignEligibility struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID int64   `gorm:"not null;index" json:"campaign_id"`
	UserID     *int64  `gorm:"index" json:"user_id,omitempty"`
	Role       *string `gorm:"type:varchar(20)" json:"role,omitempty"`
}

// NewCampaignEligibility はEligibilityRefから行を作る唯一の入口。
func NewCampaignEligibility(campaignID int64, ref EligibilityRef) (CampaignEligibility, bool) {
	e := CampaignEligibility{CampaignID: campaignID}

	switch ref.Type {
	case EligibilityTypeUser:
		id := ref.UserID
		e.UserID = &id
	case EligibilityTypeRole:
		role := string(ref.Role)
		e.Role = &role
	default:
		//NONEは行を持たない
		return CampaignEligibility{}, false
	}

	return e, true
}
