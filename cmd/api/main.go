package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envはあれば読む（無くても環境変数だけで動く）
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Category{},
		&model.Supplier{},
		&model.Pet{},
		&model.Campaign{},
		&model.CampaignTarget{},
		&model.CampaignEligibility{},
		&model.Order{},
		&model.Invoice{},
		&model.Shipment{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	tx := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//Usecase生成
	campaignUC := usecase.NewCampaignUsecase(tx, clock)
	orderUC := usecase.NewAdminOrderUsecase(tx, clock)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	h := server.Handlers{
		Campaign:      handler.NewCampaignHandler(campaignUC),
		AdminCampaign: handler.NewAdminCampaignHandler(campaignUC),
		AdminOrder:    handler.NewAdminOrderHandler(orderUC),
		AdminAudit:    handler.NewAdminAuditLogHandler(auditUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, userRepo, h); err != nil {
		panic(err)
	}
}
