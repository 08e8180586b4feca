package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// テスト用の固定時計
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// 本物のTxの代わり。fnを固定のリポジトリ群に対してそのまま実行する。
// fnがエラーを返したらロールバック相当（= エラーをそのまま返す）。
type txManagerStub struct {
	repos repo.TxRepos
	calls int
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	return fn(m.repos)
}

type txReposStub struct {
	campaigns     *CampaignRepoMock
	targets       *CampaignTargetRepoMock
	eligibilities *CampaignEligibilityRepoMock
	orders        *OrderRepoMock
	invoices      *InvoiceRepoMock
	shipments     *ShipmentRepoMock
	auditLogs     *AuditLogRepoMock
	products      *ExistingIDsRepoMock
	categories    *ExistingIDsRepoMock
	suppliers     *ExistingIDsRepoMock
	pets          *ExistingIDsRepoMock
	users         *UserRepoMock
}

// 全リポジトリをモックで埋めたTxReposを作る
func newTxReposStub() *txReposStub {
	return &txReposStub{
		campaigns:     new(CampaignRepoMock),
		targets:       new(CampaignTargetRepoMock),
		eligibilities: new(CampaignEligibilityRepoMock),
		orders:        new(OrderRepoMock),
		invoices:      new(InvoiceRepoMock),
		shipments:     new(ShipmentRepoMock),
		auditLogs:     new(AuditLogRepoMock),
		products:      new(ExistingIDsRepoMock),
		categories:    new(ExistingIDsRepoMock),
		suppliers:     new(ExistingIDsRepoMock),
		pets:          new(ExistingIDsRepoMock),
		users:         new(UserRepoMock),
	}
}

func (s *txReposStub) Campaigns() repo.CampaignRepository { return s.campaigns }
func (s *txReposStub) CampaignTargets() repo.CampaignTargetRepository {
	return s.targets
}
func (s *txReposStub) CampaignEligibilities() repo.CampaignEligibilityRepository {
	return s.eligibilities
}
func (s *txReposStub) Orders() repo.OrderRepository        { return s.orders }
func (s *txReposStub) Invoices() repo.InvoiceRepository    { return s.invoices }
func (s *txReposStub) Shipments() repo.ShipmentRepository  { return s.shipments }
func (s *txReposStub) AuditLogs() repo.AuditLogRepository  { return s.auditLogs }
func (s *txReposStub) Products() repo.ProductRepository    { return s.products }
func (s *txReposStub) Categories() repo.CategoryRepository { return s.categories }
func (s *txReposStub) Suppliers() repo.SupplierRepository  { return s.suppliers }
func (s *txReposStub) Pets() repo.PetRepository            { return s.pets }
func (s *txReposStub) Users() repo.UserRepository          { return s.users }

type CampaignRepoMock struct {
	mock.Mock
}

func (m *CampaignRepoMock) FindByID(ctx context.Context, campaignID int64) (model.Campaign, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(model.Campaign), args.Error(1)
}

func (m *CampaignRepoMock) FindByIDAndKind(ctx context.Context, campaignID int64, kind model.CampaignKind) (model.Campaign, error) {
	args := m.Called(ctx, campaignID, kind)
	return args.Get(0).(model.Campaign), args.Error(1)
}

func (m *CampaignRepoMock) ListByKind(ctx context.Context, kind model.CampaignKind, f repo.CampaignListFilter) ([]model.Campaign, int64, error) {
	args := m.Called(ctx, kind, f)
	return args.Get(0).([]model.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *CampaignRepoMock) Create(ctx context.Context, c model.Campaign) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CampaignRepoMock) Update(ctx context.Context, c model.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CampaignRepoMock) UpdateWindow(ctx context.Context, campaignID int64, startAt time.Time, endAt *time.Time) error {
	args := m.Called(ctx, campaignID, startAt, endAt)
	return args.Error(0)
}

func (m *CampaignRepoMock) Delete(ctx context.Context, campaignID int64) error {
	args := m.Called(ctx, campaignID)
	return args.Error(0)
}

func (m *CampaignRepoMock) ExistingIDsByKind(ctx context.Context, kind model.CampaignKind, ids []int64) ([]int64, error) {
	args := m.Called(ctx, kind, ids)
	return args.Get(0).([]int64), args.Error(1)
}

type CampaignTargetRepoMock struct {
	mock.Mock
}

func (m *CampaignTargetRepoMock) CreateBulk(ctx context.Context, targets []model.CampaignTarget) error {
	args := m.Called(ctx, targets)
	return args.Error(0)
}

func (m *CampaignTargetRepoMock) ListByCampaignID(ctx context.Context, campaignID int64) ([]model.CampaignTarget, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]model.CampaignTarget), args.Error(1)
}

func (m *CampaignTargetRepoMock) DeleteByCampaignID(ctx context.Context, campaignID int64) error {
	args := m.Called(ctx, campaignID)
	return args.Error(0)
}

type CampaignEligibilityRepoMock struct {
	mock.Mock
}

func (m *CampaignEligibilityRepoMock) CreateBulk(ctx context.Context, rows []model.CampaignEligibility) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *CampaignEligibilityRepoMock) ListByCampaignID(ctx context.Context, campaignID int64) ([]model.CampaignEligibility, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]model.CampaignEligibility), args.Error(1)
}

func (m *CampaignEligibilityRepoMock) DeleteByCampaignID(ctx context.Context, campaignID int64) error {
	args := m.Called(ctx, campaignID)
	return args.Error(0)
}

type OrderRepoMock struct {
	mock.Mock
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

type InvoiceRepoMock struct {
	mock.Mock
}

func (m *InvoiceRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Invoice, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Invoice), args.Error(1)
}

func (m *InvoiceRepoMock) MarkPaid(ctx context.Context, orderID int64, paidAt time.Time) error {
	args := m.Called(ctx, orderID, paidAt)
	return args.Error(0)
}

func (m *InvoiceRepoMock) MarkCancelled(ctx context.Context, orderID int64, cancelledAt time.Time) error {
	args := m.Called(ctx, orderID, cancelledAt)
	return args.Error(0)
}

func (m *InvoiceRepoMock) MarkExpired(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type ShipmentRepoMock struct {
	mock.Mock
}

func (m *ShipmentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Shipment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Shipment), args.Error(1)
}

func (m *ShipmentRepoMock) UpdateStatusByOrderID(ctx context.Context, orderID int64, status model.ShipmentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type AuditLogRepoMock struct {
	mock.Mock
}

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

// Product/Category/Supplier/Petの実在チェックは同じ形なので1つで済ませる
type ExistingIDsRepoMock struct {
	mock.Mock
}

func (m *ExistingIDsRepoMock) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]int64), args.Error(1)
}

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepoMock) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]int64), args.Error(1)
}
