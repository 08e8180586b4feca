package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecase(now time.Time) (*usecase.AdminOrderUsecase, *txReposStub, *txManagerStub) {
	r := newTxReposStub()
	tx := &txManagerStub{repos: r}
	uc := usecase.NewAdminOrderUsecase(tx, &fixedClock{now: now})
	return uc, r, tx
}

func TestOrderPay(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	o := model.Order{ID: 100, UserID: 7, Status: model.OrderStatusWaitingPayment, TotalPrice: 3000}
	inv := model.Invoice{ID: 1, OrderID: 100, Status: model.InvoiceStatusPending, Amount: 3000}

	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
	r.invoices.On("FindByOrderID", ctx, int64(100)).Return(inv, nil)
	r.invoices.On("MarkPaid", ctx, int64(100), now).Return(nil)
	r.orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusPacking).Return(nil)
	r.auditLogs.On("Create", ctx, mock.AnythingOfType("model.AuditLog")).Return(nil)

	err := uc.Pay(ctx, 1, 100)

	assert.NoError(t, err)
	//請求書と注文の2行が同じトランザクション内で動く
	r.invoices.AssertCalled(t, "MarkPaid", ctx, int64(100), now)
	r.orders.AssertCalled(t, "UpdateStatus", ctx, int64(100), model.OrderStatusPacking)
	r.auditLogs.AssertNumberOfCalls(t, "Create", 1)
}

func TestOrderPay_AlreadyPaidIsNoop(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	paidAt := now.Add(-time.Hour)
	o := model.Order{ID: 100, Status: model.OrderStatusPacking}
	inv := model.Invoice{ID: 1, OrderID: 100, Status: model.InvoiceStatusPaid, PaidAt: &paidAt}

	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
	r.invoices.On("FindByOrderID", ctx, int64(100)).Return(inv, nil)

	err := uc.Pay(ctx, 1, 100)

	//成功扱いだが何も書かない（paid_atを上書きしない）
	assert.NoError(t, err)
	r.invoices.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	r.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	r.auditLogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderPay_WrongStatusConflicts(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

	for _, status := range []model.OrderStatus{
		model.OrderStatusShipping,
		model.OrderStatusDelivered,
		model.OrderStatusExpired,
		model.OrderStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			uc, r, _ := newOrderUsecase(now)
			ctx := context.Background()

			o := model.Order{ID: 100, Status: status}
			inv := model.Invoice{ID: 1, OrderID: 100, Status: model.InvoiceStatusPending}

			r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
			r.invoices.On("FindByOrderID", ctx, int64(100)).Return(inv, nil)

			err := uc.Pay(ctx, 1, 100)

			assertHTTPError(t, err, http.StatusConflict)
			r.invoices.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderPay_NotFound(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()
	r.orders.On("FindByID", ctx, int64(999)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.Pay(ctx, 1, 999)

	assertHTTPError(t, err, http.StatusNotFound)
}

func TestOrderCancel(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	o := model.Order{ID: 100, Status: model.OrderStatusPacking}

	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
	r.invoices.On("MarkCancelled", ctx, int64(100), now).Return(nil)
	r.orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusCancelled).Return(nil)
	r.shipments.On("UpdateStatusByOrderID", ctx, int64(100), model.ShipmentStatusCancelled).Return(nil)
	r.auditLogs.On("Create", ctx, mock.AnythingOfType("model.AuditLog")).Return(nil)

	err := uc.Cancel(ctx, 1, 100)

	//注文・請求書・配送の3行が全部動く
	assert.NoError(t, err)
	r.invoices.AssertCalled(t, "MarkCancelled", ctx, int64(100), now)
	r.orders.AssertCalled(t, "UpdateStatus", ctx, int64(100), model.OrderStatusCancelled)
	r.shipments.AssertCalled(t, "UpdateStatusByOrderID", ctx, int64(100), model.ShipmentStatusCancelled)
}

func TestOrderCancel_AlreadyCancelledIsNoop(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	o := model.Order{ID: 100, Status: model.OrderStatusCancelled}
	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)

	err := uc.Cancel(ctx, 1, 100)

	assert.NoError(t, err)
	r.invoices.AssertNotCalled(t, "MarkCancelled", mock.Anything, mock.Anything, mock.Anything)
	r.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	r.shipments.AssertNotCalled(t, "UpdateStatusByOrderID", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderCancel_WrongStatusConflicts(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

	for _, status := range []model.OrderStatus{
		model.OrderStatusShipping,
		model.OrderStatusDelivered,
		model.OrderStatusExpired,
	} {
		t.Run(string(status), func(t *testing.T) {
			uc, r, _ := newOrderUsecase(now)
			ctx := context.Background()

			r.orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: status}, nil)

			err := uc.Cancel(ctx, 1, 100)

			assertHTTPError(t, err, http.StatusConflict)
			r.invoices.AssertNotCalled(t, "MarkCancelled", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// 配送行の更新に失敗したらエラーを返してトランザクションごと巻き戻す。
// 先に成功した請求書・注文の書き込みもコミットされない。
func TestOrderCancel_ShipmentWriteFailureAbortsAll(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, tx := newOrderUsecase(now)

	ctx := context.Background()

	o := model.Order{ID: 100, Status: model.OrderStatusWaitingPayment}

	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
	r.invoices.On("MarkCancelled", ctx, int64(100), now).Return(nil)
	r.orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusCancelled).Return(nil)
	//配送行が無い古い注文
	r.shipments.On("UpdateStatusByOrderID", ctx, int64(100), model.ShipmentStatusCancelled).Return(repo.ErrNotFound)

	err := uc.Cancel(ctx, 1, 100)

	assertHTTPError(t, err, http.StatusInternalServerError)
	assert.Equal(t, 1, tx.calls)
	//エラー後は監査ログも書かない
	r.auditLogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderShip(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	r.orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusPacking}, nil)
	r.orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusShipping).Return(nil)
	r.shipments.On("UpdateStatusByOrderID", ctx, int64(100), model.ShipmentStatusDelivering).Return(nil)
	r.auditLogs.On("Create", ctx, mock.AnythingOfType("model.AuditLog")).Return(nil)

	assert.NoError(t, uc.Ship(ctx, 1, 100))
	r.shipments.AssertCalled(t, "UpdateStatusByOrderID", ctx, int64(100), model.ShipmentStatusDelivering)
}

func TestOrderDeliver(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	r.orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusShipping}, nil)
	r.orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusDelivered).Return(nil)
	r.shipments.On("UpdateStatusByOrderID", ctx, int64(100), model.ShipmentStatusDelivered).Return(nil)
	r.auditLogs.On("Create", ctx, mock.AnythingOfType("model.AuditLog")).Return(nil)

	assert.NoError(t, uc.Deliver(ctx, 1, 100))
}

func TestOrderExpire(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	r.orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusWaitingPayment}, nil)
	r.invoices.On("MarkExpired", ctx, int64(100)).Return(nil)
	r.orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusExpired).Return(nil)
	r.auditLogs.On("Create", ctx, mock.AnythingOfType("model.AuditLog")).Return(nil)

	assert.NoError(t, uc.Expire(ctx, 1, 100))
	r.invoices.AssertCalled(t, "MarkExpired", ctx, int64(100))
}

func TestOrderGet_JoinsInvoiceAndShipment(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	o := model.Order{ID: 100, UserID: 7, Status: model.OrderStatusPacking, TotalPrice: 3000}
	paidAt := now.Add(-time.Hour)
	inv := model.Invoice{ID: 1, OrderID: 100, Number: "INV-100", Amount: 3000, Status: model.InvoiceStatusPaid, PaidAt: &paidAt}
	s := model.Shipment{ID: 2, OrderID: 100, TrackingCode: "TRK-100", Status: model.ShipmentStatusConfirmed}

	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
	r.invoices.On("FindByOrderID", ctx, int64(100)).Return(inv, nil)
	r.shipments.On("FindByOrderID", ctx, int64(100)).Return(s, nil)

	out, err := uc.Get(ctx, 100)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.ID)
	if assert.NotNil(t, out.Invoice) {
		assert.Equal(t, "INV-100", out.Invoice.Number)
		assert.Equal(t, "PAID", out.Invoice.Status)
	}
	if assert.NotNil(t, out.Shipment) {
		assert.Equal(t, "TRK-100", out.Shipment.TrackingCode)
	}
}

func TestOrderGet_MissingSubRowsAreOmitted(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, r, _ := newOrderUsecase(now)

	ctx := context.Background()

	o := model.Order{ID: 100, Status: model.OrderStatusWaitingPayment}
	r.orders.On("FindByID", ctx, int64(100)).Return(o, nil)
	r.invoices.On("FindByOrderID", ctx, int64(100)).Return(model.Invoice{}, repo.ErrNotFound)
	r.shipments.On("FindByOrderID", ctx, int64(100)).Return(model.Shipment{}, repo.ErrNotFound)

	out, err := uc.Get(ctx, 100)

	//読み取りでは欠けた行をエラーにしない
	assert.NoError(t, err)
	assert.Nil(t, out.Invoice)
	assert.Nil(t, out.Shipment)
}

func TestOrderList_InvalidPaging(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	uc, _, tx := newOrderUsecase(now)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertHTTPError(t, err, http.StatusBadRequest)

	_, err = uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 1000})
	assertHTTPError(t, err, http.StatusBadRequest)

	assert.Equal(t, 0, tx.calls)
}
