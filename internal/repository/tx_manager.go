package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Campaigns() CampaignRepository
	CampaignTargets() CampaignTargetRepository
	CampaignEligibilities() CampaignEligibilityRepository
	Orders() OrderRepository
	Invoices() InvoiceRepository
	Shipments() ShipmentRepository
	AuditLogs() AuditLogRepository

	//対象・対象者の実在チェック用
	Products() ProductRepository
	Categories() CategoryRepository
	Suppliers() SupplierRepository
	Pets() PetRepository
	Users() UserRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 注文のpay/cancelは複数行を必ず一緒に動かすのでここを通す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
