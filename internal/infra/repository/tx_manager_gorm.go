package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	campaigns     repo.CampaignRepository
	targets       repo.CampaignTargetRepository
	eligibilities repo.CampaignEligibilityRepository
	orders        repo.OrderRepository
	invoices      repo.InvoiceRepository
	shipments     repo.ShipmentRepository
	auditLogs     repo.AuditLogRepository
	products      repo.ProductRepository
	categories    repo.CategoryRepository
	suppliers     repo.SupplierRepository
	pets          repo.PetRepository
	users         repo.UserRepository
}

func (r *txReposGorm) Campaigns() repo.CampaignRepository             { return r.campaigns }
func (r *txReposGorm) CampaignTargets() repo.CampaignTargetRepository { return r.targets }
func (r *txReposGorm) CampaignEligibilities() repo.CampaignEligibilityRepository {
	return r.eligibilities
}
func (r *txReposGorm) Orders() repo.OrderRepository       { return r.orders }
func (r *txReposGorm) Invoices() repo.InvoiceRepository   { return r.invoices }
func (r *txReposGorm) Shipments() repo.ShipmentRepository { return r.shipments }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository { return r.auditLogs }
func (r *txReposGorm) Products() repo.ProductRepository   { return r.products }
func (r *txReposGorm) Categories() repo.CategoryRepository { return r.categories }
func (r *txReposGorm) Suppliers() repo.SupplierRepository  { return r.suppliers }
func (r *txReposGorm) Pets() repo.PetRepository            { return r.pets }
func (r *txReposGorm) Users() repo.UserRepository          { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			campaigns:     NewCampaignGormRepository(tx),
			targets:       NewCampaignTargetGormRepository(tx),
			eligibilities: NewCampaignEligibilityGormRepository(tx),
			orders:        NewOrderGormRepository(tx),
			invoices:      NewInvoiceGormRepository(tx),
			shipments:     NewShipmentGormRepository(tx),
			auditLogs:     NewAuditLogGormRepository(tx),
			products:      NewProductGormRepository(tx),
			categories:    NewCategoryGormRepository(tx),
			suppliers:     NewSupplierGormRepository(tx),
			pets:          NewPetGormRepository(tx),
			users:         NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
