package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 現在時刻の供給源。ステータス導出はこれ経由のnowだけを使う。
type Clock interface {
	Now() time.Time
}

// バナー/プロモ/割引/送料無料の4種類を1つのエンジンで扱う。
type CampaignUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewCampaignUsecase(tx repo.TransactionManager, clock Clock) *CampaignUsecase {
	return &CampaignUsecase{tx: tx, clock: clock}
}

// 作成と全置き換え更新で共通の入力DTO
type CreateCampaignInput struct {
	Name    string
	Code    string
	StartAt time.Time
	EndAt   *time.Time

	TargetType string
	TargetIDs  []int64

	//割引/送料無料のみ
	EligibilityType    string
	EligibilityUserIDs []int64
	EligibilityRoles   []string
	MinimumType        string
	MinimumValue       *int64
	LimitUse           *int64
	LimitOnce          bool

	//割引のみ
	ValueType string
	Value     *int64
}

type ListCampaignsInput struct {
	Page  int
	Limit int
	Q     string
	//導出ステータスでの絞り込み（SCHEDULED/ACTIVE/EXPIRED、空なら全部）
	Status string
}

type CampaignOutput struct {
	ID      int64      `json:"id"`
	Kind    string     `json:"kind"`
	Name    string     `json:"name"`
	Code    string     `json:"code,omitempty"`
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	//保存されていない導出値
	Status string `json:"status"`

	TargetType string  `json:"target_type"`
	TargetIDs  []int64 `json:"target_ids"`

	EligibilityType    string   `json:"eligibility_type,omitempty"`
	EligibilityUserIDs []int64  `json:"eligibility_user_ids,omitempty"`
	EligibilityRoles   []string `json:"eligibility_roles,omitempty"`
	MinimumType        string   `json:"minimum_type,omitempty"`
	MinimumValue       *int64   `json:"minimum_value,omitempty"`
	LimitUse           *int64   `json:"limit_use,omitempty"`
	LimitOnce          bool     `json:"limit_once"`

	ValueType string `json:"value_type,omitempty"`
	Value     *int64 `json:"value,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type CampaignListOutput struct {
	Items []CampaignOutput `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// 入力検証が終わった状態
type campaignDraft struct {
	campaign      model.Campaign
	targets       []model.TargetRef
	eligibilities []model.EligibilityRef
}

// 割引/送料無料だけが対象者・最低条件・上限を持てる
func kindHasEligibility(kind model.CampaignKind) bool {
	return kind == model.CampaignKindDiscount || kind == model.CampaignKindFreeShipping
}

func buildCampaignDraft(kind model.CampaignKind, in CreateCampaignInput) (campaignDraft, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	code := strings.TrimSpace(in.Code)
	if kindHasEligibility(kind) {
		if code == "" {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "code required")
		}
	} else if code != "" {
		return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "code not allowed")
	}

	//対象の種類
	targetType := model.TargetType(in.TargetType)
	switch targetType {
	case model.TargetTypeProducts, model.TargetTypeCategories, model.TargetTypeSuppliers,
		model.TargetTypePets, model.TargetTypePromos, model.TargetTypeDetail:
	default:
		return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "invalid target_type")
	}

	//DETAILは対象IDを持たない。それ以外は必須。
	if targetType == model.TargetTypeDetail {
		if len(in.TargetIDs) != 0 {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "target_ids must be empty")
		}
	} else if len(in.TargetIDs) == 0 {
		return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "target_ids required")
	}

	seen := make(map[int64]bool, len(in.TargetIDs))
	targets := make([]model.TargetRef, 0, len(in.TargetIDs))
	for _, id := range in.TargetIDs {
		if id <= 0 {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "invalid target_ids")
		}
		if seen[id] {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "duplicate target_ids")
		}
		seen[id] = true
		targets = append(targets, model.TargetRef{Type: targetType, ID: id})
	}

	//対象者・最低条件・上限
	eligibilityType := model.EligibilityTypeNone
	minimumType := model.MinimumTypeNone
	var eligibilities []model.EligibilityRef

	if kindHasEligibility(kind) {
		var err error
		eligibilityType, eligibilities, err = buildEligibility(in)
		if err != nil {
			return campaignDraft{}, err
		}

		switch model.MinimumType(in.MinimumType) {
		case model.MinimumTypeQuantity, model.MinimumTypeAmount:
			minimumType = model.MinimumType(in.MinimumType)
			if in.MinimumValue == nil || *in.MinimumValue <= 0 {
				return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "minimum_value required")
			}
		case model.MinimumTypeNone, "":
			if in.MinimumValue != nil {
				return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "minimum_value not allowed")
			}
		default:
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "invalid minimum_type")
		}

		if in.LimitUse != nil && *in.LimitUse <= 0 {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "invalid limit_use")
		}
	} else {
		if in.EligibilityType != "" && in.EligibilityType != string(model.EligibilityTypeNone) {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "eligibility not allowed")
		}
		if len(in.EligibilityUserIDs) != 0 || len(in.EligibilityRoles) != 0 {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "eligibility not allowed")
		}
		if in.MinimumType != "" && in.MinimumType != string(model.MinimumTypeNone) || in.MinimumValue != nil {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "minimum not allowed")
		}
		if in.LimitUse != nil || in.LimitOnce {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "limits not allowed")
		}
	}

	//割引の値
	valueType := model.DiscountValueType("")
	var value *int64
	if kind == model.CampaignKindDiscount {
		valueType = model.DiscountValueType(in.ValueType)
		switch valueType {
		case model.DiscountValueFixed, model.DiscountValuePercentage:
		default:
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "invalid value_type")
		}
		if in.Value == nil || *in.Value <= 0 {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "invalid value")
		}
		if valueType == model.DiscountValuePercentage && *in.Value > 100 {
			return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "value must be <= 100")
		}
		value = in.Value
	} else if in.ValueType != "" || in.Value != nil {
		return campaignDraft{}, NewHTTPError(http.StatusBadRequest, "value not allowed")
	}

	//end_at < start_at はここでは弾かない。導出側がEXPIRED扱いにする。
	c := model.Campaign{
		Kind:            kind,
		Name:            name,
		Code:            code,
		StartAt:         in.StartAt,
		EndAt:           in.EndAt,
		TargetType:      targetType,
		EligibilityType: eligibilityType,
		MinimumType:     minimumType,
		MinimumValue:    in.MinimumValue,
		LimitUse:        in.LimitUse,
		LimitOnce:       in.LimitOnce,
		ValueType:       valueType,
		Value:           value,
	}

	return campaignDraft{campaign: c, targets: targets, eligibilities: eligibilities}, nil
}

func buildEligibility(in CreateCampaignInput) (model.EligibilityType, []model.EligibilityRef, error) {
	et := model.EligibilityType(in.EligibilityType)
	if in.EligibilityType == "" {
		et = model.EligibilityTypeNone
	}

	switch et {
	case model.EligibilityTypeNone:
		if len(in.EligibilityUserIDs) != 0 || len(in.EligibilityRoles) != 0 {
			return "", nil, NewHTTPError(http.StatusBadRequest, "eligibility ids not allowed")
		}
		return et, nil, nil

	case model.EligibilityTypeUser:
		if len(in.EligibilityUserIDs) == 0 {
			return "", nil, NewHTTPError(http.StatusBadRequest, "eligibility_user_ids required")
		}
		if len(in.EligibilityRoles) != 0 {
			return "", nil, NewHTTPError(http.StatusBadRequest, "eligibility_roles not allowed")
		}
		seen := make(map[int64]bool, len(in.EligibilityUserIDs))
		refs := make([]model.EligibilityRef, 0, len(in.EligibilityUserIDs))
		for _, id := range in.EligibilityUserIDs {
			if id <= 0 {
				return "", nil, NewHTTPError(http.StatusBadRequest, "invalid eligibility_user_ids")
			}
			if seen[id] {
				return "", nil, NewHTTPError(http.StatusBadRequest, "duplicate eligibility_user_ids")
			}
			seen[id] = true
			refs = append(refs, model.EligibilityRef{Type: model.EligibilityTypeUser, UserID: id})
		}
		return et, refs, nil

	case model.EligibilityTypeRole:
		if len(in.EligibilityRoles) == 0 {
			return "", nil, NewHTTPError(http.StatusBadRequest, "eligibility_roles required")
		}
		if len(in.EligibilityUserIDs) != 0 {
			return "", nil, NewHTTPError(http.StatusBadRequest, "eligibility_user_ids not allowed")
		}
		seen := make(map[string]bool, len(in.EligibilityRoles))
		refs := make([]model.EligibilityRef, 0, len(in.EligibilityRoles))
		for _, s := range in.EligibilityRoles {
			role := model.Role(s)
			if role != model.RoleUser && role != model.RoleAdmin {
				return "", nil, NewHTTPError(http.StatusBadRequest, "invalid eligibility_roles")
			}
			if seen[s] {
				return "", nil, NewHTTPError(http.StatusBadRequest, "duplicate eligibility_roles")
			}
			seen[s] = true
			refs = append(refs, model.EligibilityRef{Type: model.EligibilityTypeRole, Role: role})
		}
		return et, refs, nil

	default:
		return "", nil, NewHTTPError(http.StatusBadRequest, "invalid eligibility_type")
	}
}

// 対象IDが全部実在するかをDBで確認する（参照整合性はここで保証する）
func resolveTargetIDs(ctx context.Context, r repo.TxRepos, targetType model.TargetType, refs []model.TargetRef) error {
	if len(refs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	var (
		found []int64
		err   error
		label string
	)

	switch targetType {
	case model.TargetTypeProducts:
		label = "product"
		found, err = r.Products().ExistingIDs(ctx, ids)
	case model.TargetTypeCategories:
		label = "category"
		found, err = r.Categories().ExistingIDs(ctx, ids)
	case model.TargetTypeSuppliers:
		label = "supplier"
		found, err = r.Suppliers().ExistingIDs(ctx, ids)
	case model.TargetTypePets:
		label = "pet"
		found, err = r.Pets().ExistingIDs(ctx, ids)
	case model.TargetTypePromos:
		//バナーがプロモを指す場合。プロモ種のキャンペーンだけが対象。
		label = "promo"
		found, err = r.Campaigns().ExistingIDsByKind(ctx, model.CampaignKindPromo, ids)
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid target_type")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	exists := make(map[int64]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	for _, id := range ids {
		if !exists[id] {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("target_ids: %s %d not found", label, id))
		}
	}
	return nil
}

// 対象者（USER指定）の実在チェック
func resolveEligibility(ctx context.Context, r repo.TxRepos, refs []model.EligibilityRef) error {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if ref.Type == model.EligibilityTypeUser {
			ids = append(ids, ref.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := r.Users().ExistingIDs(ctx, ids)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	exists := make(map[int64]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	for _, id := range ids {
		if !exists[id] {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("eligibility_user_ids: user %d not found", id))
		}
	}
	return nil
}

func targetRows(campaignID int64, refs []model.TargetRef) ([]model.CampaignTarget, error) {
	rows := make([]model.CampaignTarget, 0, len(refs))
	for _, ref := range refs {
		row, err := model.NewCampaignTarget(campaignID, ref)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid target_type")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func eligibilityRows(campaignID int64, refs []model.EligibilityRef) []model.CampaignEligibility {
	rows := make([]model.CampaignEligibility, 0, len(refs))
	for _, ref := range refs {
		if row, ok := model.NewCampaignEligibility(campaignID, ref); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func (u *CampaignUsecase) Create(ctx context.Context, actorAdminID int64, kind model.CampaignKind, in CreateCampaignInput) (CampaignOutput, error) {
	if actorAdminID <= 0 {
		return CampaignOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	draft, err := buildCampaignDraft(kind, in)
	if err != nil {
		return CampaignOutput{}, err
	}

	now := u.clock.Now()
	var out CampaignOutput

	//本体＋対象行＋対象者行は1トランザクションでまとめて入れる
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := resolveTargetIDs(ctx, r, draft.campaign.TargetType, draft.targets); err != nil {
			return err
		}
		if err := resolveEligibility(ctx, r, draft.eligibilities); err != nil {
			return err
		}

		campaignID, err := r.Campaigns().Create(ctx, draft.campaign)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rows, err := targetRows(campaignID, draft.targets)
		if err != nil {
			return err
		}
		if err := r.CampaignTargets().CreateBulk(ctx, rows); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.CampaignEligibilities().CreateBulk(ctx, eligibilityRows(campaignID, draft.eligibilities)); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ
		afterJSON := `{"kind":"` + string(kind) + `","name":"` + draft.campaign.Name + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionCreateCampaign,
			ResourceType: model.AuditResourceCampaign,
			ResourceID:   campaignID,
			AfterJSON:    afterJSON,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := draft.campaign
		created.ID = campaignID
		out = toCampaignOutput(created, draft.targets, draft.eligibilities, now)
		return nil
	})

	if err != nil {
		return CampaignOutput{}, err
	}
	return out, nil
}

// 全置き換え更新。対象・対象者は部分更新せず丸ごと入れ替える。
func (u *CampaignUsecase) Update(ctx context.Context, actorAdminID int64, kind model.CampaignKind, campaignID int64, in CreateCampaignInput) (CampaignOutput, error) {
	if actorAdminID <= 0 {
		return CampaignOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if campaignID <= 0 {
		return CampaignOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	draft, err := buildCampaignDraft(kind, in)
	if err != nil {
		return CampaignOutput{}, err
	}

	now := u.clock.Now()
	var out CampaignOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.Campaigns().FindByIDAndKind(ctx, campaignID, kind)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := resolveTargetIDs(ctx, r, draft.campaign.TargetType, draft.targets); err != nil {
			return err
		}
		if err := resolveEligibility(ctx, r, draft.eligibilities); err != nil {
			return err
		}

		updated := draft.campaign
		updated.ID = campaignID
		updated.CreatedAt = existing.CreatedAt
		if err := r.Campaigns().Update(ctx, updated); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//対象・対象者は全置き換え
		if err := r.CampaignTargets().DeleteByCampaignID(ctx, campaignID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		rows, err := targetRows(campaignID, draft.targets)
		if err != nil {
			return err
		}
		if err := r.CampaignTargets().CreateBulk(ctx, rows); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.CampaignEligibilities().DeleteByCampaignID(ctx, campaignID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.CampaignEligibilities().CreateBulk(ctx, eligibilityRows(campaignID, draft.eligibilities)); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := `{"name":"` + existing.Name + `"}`
		afterJSON := `{"name":"` + updated.Name + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionUpdateCampaign,
			ResourceType: model.AuditResourceCampaign,
			ResourceID:   campaignID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toCampaignOutput(updated, draft.targets, draft.eligibilities, now)
		return nil
	})

	if err != nil {
		return CampaignOutput{}, err
	}
	return out, nil
}

// 有効/無効の切り替え。statusは書かず、タイムスタンプだけを動かす。
//   - 有効化: start_at=now / end_at=null（予約中でも即ACTIVEになる）
//   - 無効化: end_at=now（start_atはそのまま。次の評価からEXPIRED）
func (u *CampaignUsecase) SetActive(ctx context.Context, actorAdminID int64, campaignID int64, active bool) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if campaignID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Campaigns().FindByID(ctx, campaignID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		startAt := c.StartAt
		var endAt *time.Time
		if active {
			startAt = now
			endAt = nil
		} else {
			endAt = &now
		}

		if err := r.Campaigns().UpdateWindow(ctx, campaignID, startAt, endAt); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := `{"status":"` + string(c.StatusAt(now)) + `"}`
		afterJSON := `{"active":"false"}`
		if active {
			afterJSON = `{"active":"true"}`
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionToggleCampaign,
			ResourceType: model.AuditResourceCampaign,
			ResourceID:   campaignID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func (u *CampaignUsecase) Get(ctx context.Context, kind model.CampaignKind, campaignID int64) (CampaignOutput, error) {
	if campaignID <= 0 {
		return CampaignOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()
	var out CampaignOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Campaigns().FindByIDAndKind(ctx, campaignID, kind)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		targets, elig, err := loadCampaignRefs(ctx, r, campaignID)
		if err != nil {
			return err
		}

		out = toCampaignOutput(c, targets, elig, now)
		return nil
	})

	if err != nil {
		return CampaignOutput{}, err
	}
	return out, nil
}

func (u *CampaignUsecase) List(ctx context.Context, kind model.CampaignKind, in ListCampaignsInput) (CampaignListOutput, error) {
	if in.Page < 1 {
		return CampaignListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return CampaignListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	statusFilter := model.CampaignStatus(in.Status)
	switch statusFilter {
	case "", model.CampaignStatusScheduled, model.CampaignStatusActive, model.CampaignStatusExpired:
	default:
		return CampaignListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	//1リクエスト1つのnow。一覧と件数で時刻がずれないようにする。
	now := u.clock.Now()
	var out CampaignListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Campaigns().ListByKind(ctx, kind, repo.CampaignListFilter{
			Page:  in.Page,
			Limit: in.Limit,
			Q:     strings.TrimSpace(in.Q),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]CampaignOutput, 0, len(items))
		for _, c := range items {
			//導出ステータスはSQLに降ろせないので取得後に絞る
			if statusFilter != "" && c.StatusAt(now) != statusFilter {
				continue
			}
			targets, elig, err := loadCampaignRefs(ctx, r, c.ID)
			if err != nil {
				return err
			}
			outs = append(outs, toCampaignOutput(c, targets, elig, now))
		}

		out = CampaignListOutput{
			Items: outs,
			Total: total,
			Page:  in.Page,
			Limit: in.Limit,
		}
		return nil
	})

	if err != nil {
		return CampaignListOutput{}, err
	}
	return out, nil
}

// ListActive は公開側向け。導出ステータスがACTIVEのものだけを返す。
func (u *CampaignUsecase) ListActive(ctx context.Context, kind model.CampaignKind) ([]CampaignOutput, error) {
	now := u.clock.Now()
	var outs []CampaignOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, _, err := r.Campaigns().ListByKind(ctx, kind, repo.CampaignListFilter{Page: 1, Limit: 100})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]CampaignOutput, 0, len(items))
		for _, c := range items {
			if c.StatusAt(now) != model.CampaignStatusActive {
				continue
			}
			targets, elig, err := loadCampaignRefs(ctx, r, c.ID)
			if err != nil {
				return err
			}
			outs = append(outs, toCampaignOutput(c, targets, elig, now))
		}
		return nil
	})

	if err != nil {
		return []CampaignOutput{}, err
	}
	return outs, nil
}

func (u *CampaignUsecase) Delete(ctx context.Context, actorAdminID int64, kind model.CampaignKind, campaignID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if campaignID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Campaigns().FindByIDAndKind(ctx, campaignID, kind)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Campaigns().Delete(ctx, campaignID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//対象行・対象者行も一緒に消す
		if err := r.CampaignTargets().DeleteByCampaignID(ctx, campaignID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.CampaignEligibilities().DeleteByCampaignID(ctx, campaignID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := `{"name":"` + c.Name + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionDeleteCampaign,
			ResourceType: model.AuditResourceCampaign,
			ResourceID:   campaignID,
			BeforeJSON:   beforeJSON,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func loadCampaignRefs(ctx context.Context, r repo.TxRepos, campaignID int64) ([]model.TargetRef, []model.EligibilityRef, error) {
	rows, err := r.CampaignTargets().ListByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	targets := make([]model.TargetRef, 0, len(rows))
	for _, row := range rows {
		//不正な行（外部キーが0個/複数）は読み飛ばす
		if ref, ok := row.Ref(); ok {
			targets = append(targets, ref)
		}
	}

	eligRows, err := r.CampaignEligibilities().ListByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	elig := make([]model.EligibilityRef, 0, len(eligRows))
	for _, row := range eligRows {
		switch {
		case row.UserID != nil:
			elig = append(elig, model.EligibilityRef{Type: model.EligibilityTypeUser, UserID: *row.UserID})
		case row.Role != nil:
			elig = append(elig, model.EligibilityRef{Type: model.EligibilityTypeRole, Role: model.Role(*row.Role)})
		}
	}

	return targets, elig, nil
}

func toCampaignOutput(c model.Campaign, targets []model.TargetRef, elig []model.EligibilityRef, now time.Time) CampaignOutput {
	targetIDs := make([]int64, 0, len(targets))
	for _, ref := range targets {
		targetIDs = append(targetIDs, ref.ID)
	}

	userIDs := make([]int64, 0)
	roles := make([]string, 0)
	for _, ref := range elig {
		switch ref.Type {
		case model.EligibilityTypeUser:
			userIDs = append(userIDs, ref.UserID)
		case model.EligibilityTypeRole:
			roles = append(roles, string(ref.Role))
		}
	}

	return CampaignOutput{
		ID:      c.ID,
		Kind:    string(c.Kind),
		Name:    c.Name,
		Code:    c.Code,
		StartAt: c.StartAt,
		EndAt:   c.EndAt,

		Status: string(c.StatusAt(now)),

		TargetType: string(c.TargetType),
		TargetIDs:  targetIDs,

		EligibilityType:    string(c.EligibilityType),
		EligibilityUserIDs: userIDs,
		EligibilityRoles:   roles,
		MinimumType:        string(c.MinimumType),
		MinimumValue:       c.MinimumValue,
		LimitUse:           c.LimitUse,
		LimitOnce:          c.LimitOnce,

		ValueType: string(c.ValueType),
		Value:     c.Value,

		CreatedAt: c.CreatedAt,
	}
}
