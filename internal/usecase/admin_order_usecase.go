package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 注文・請求書・配送の3行を必ず一緒に動かす。
// 途中で失敗したら全部巻き戻す（半分キャンセルされた注文を作らない）。
type AdminOrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, clock: clock}
}

type InvoiceOutput struct {
	Number      string     `json:"number"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}

type ShipmentOutput struct {
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
}

type OrderOutput struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Status     string          `json:"status"`
	TotalPrice int64           `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	Invoice    *InvoiceOutput  `json:"invoice,omitempty"`
	Shipment   *ShipmentOutput `json:"shipment,omitempty"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			oo, err := loadOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, oo)
		}

		out = OrderListOutput{Items: outs, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = loadOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 支払い確定: 請求書をPAIDに、注文をPACKINGに。2行で1つの原子単位。
func (u *AdminOrderUsecase) Pay(ctx context.Context, actorAdminID int64, orderID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		inv, err := r.Invoices().FindByOrderID(ctx, orderID)
		if err != nil {
			//請求書が無い注文は直せないので500（トランザクションごと戻る）
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//すでに支払い済みなら何もしない（paid_atも上書きしない）
		if o.Status == model.OrderStatusPacking && inv.Status == model.InvoiceStatusPaid {
			return nil
		}

		//二重実行ガード: WAITING_PAYMENTのときだけ進める
		if o.Status != model.OrderStatusWaitingPayment {
			return NewHTTPError(http.StatusConflict, "cannot pay order in current status")
		}

		if err := r.Invoices().MarkPaid(ctx, orderID, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusPacking); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.audit(ctx, r, actorAdminID, orderID, o.Status, model.OrderStatusPacking, now)
	})
}

// キャンセル: 請求書・注文・配送の3行で1つの原子単位。
// 配送行が無い古い注文は失敗し、注文・請求書も元のまま残る。
func (u *AdminOrderUsecase) Cancel(ctx context.Context, actorAdminID int64, orderID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//すでにキャンセル済みなら何もしない
		if o.Status == model.OrderStatusCancelled {
			return nil
		}

		//キャンセルできるのは支払い前か梱包中だけ
		if o.Status != model.OrderStatusWaitingPayment && o.Status != model.OrderStatusPacking {
			return NewHTTPError(http.StatusConflict, "cannot cancel order in current status")
		}

		if err := r.Invoices().MarkCancelled(ctx, orderID, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Shipments().UpdateStatusByOrderID(ctx, orderID, model.ShipmentStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.audit(ctx, r, actorAdminID, orderID, o.Status, model.OrderStatusCancelled, now)
	})
}

// 発送: 梱包中→配送中
func (u *AdminOrderUsecase) Ship(ctx context.Context, actorAdminID int64, orderID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status == model.OrderStatusShipping {
			return nil
		}
		if o.Status != model.OrderStatusPacking {
			return NewHTTPError(http.StatusConflict, "cannot ship order in current status")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusShipping); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Shipments().UpdateStatusByOrderID(ctx, orderID, model.ShipmentStatusDelivering); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.audit(ctx, r, actorAdminID, orderID, o.Status, model.OrderStatusShipping, now)
	})
}

// 配達完了: 配送中→配達済み
func (u *AdminOrderUsecase) Deliver(ctx context.Context, actorAdminID int64, orderID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status == model.OrderStatusDelivered {
			return nil
		}
		if o.Status != model.OrderStatusShipping {
			return NewHTTPError(http.StatusConflict, "cannot deliver order in current status")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusDelivered); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Shipments().UpdateStatusByOrderID(ctx, orderID, model.ShipmentStatusDelivered); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.audit(ctx, r, actorAdminID, orderID, o.Status, model.OrderStatusDelivered, now)
	})
}

// 支払い期限切れ: 支払い待ち→期限切れ。請求書も一緒にEXPIREDへ。
func (u *AdminOrderUsecase) Expire(ctx context.Context, actorAdminID int64, orderID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	now := u.clock.Now()

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status == model.OrderStatusExpired {
			return nil
		}
		if o.Status != model.OrderStatusWaitingPayment {
			return NewHTTPError(http.StatusConflict, "cannot expire order in current status")
		}

		if err := r.Invoices().MarkExpired(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusExpired); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.audit(ctx, r, actorAdminID, orderID, o.Status, model.OrderStatusExpired, now)
	})
}

// 監査ログ（UPDATE_ORDER_STATUS）
func (u *AdminOrderUsecase) audit(ctx context.Context, r repo.TxRepos, actorAdminID int64, orderID int64, before model.OrderStatus, after model.OrderStatus, now time.Time) error {
	beforeJSON := `{"status":"` + string(before) + `"}`
	afterJSON := `{"status":"` + string(after) + `"}`
	if err := r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    now,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func loadOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	out := toOrderOutput(o)

	inv, err := r.Invoices().FindByOrderID(ctx, o.ID)
	if err == nil {
		out.Invoice = &InvoiceOutput{
			Number:      inv.Number,
			Amount:      inv.Amount,
			Status:      string(inv.Status),
			PaidAt:      inv.PaidAt,
			CancelledAt: inv.CancelledAt,
		}
	} else if err != repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s, err := r.Shipments().FindByOrderID(ctx, o.ID)
	if err == nil {
		out.Shipment = &ShipmentOutput{
			TrackingCode: s.TrackingCode,
			Status:       string(s.Status),
		}
	} else if err != repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
	}
}
