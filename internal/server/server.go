package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Campaign      *handler.CampaignHandler
	AdminCampaign *handler.AdminCampaignHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminAudit    *handler.AdminAuditLogHandler
}

func Start(addr string, cfg config.Config, userRepo repository.UserRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	//ログ突き合わせ用のリクエストID
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	h.Campaign.RegisterRoutes(e)
	h.AdminCampaign.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.AdminAudit.RegisterRoutes(e, cfg, userRepo)

	return e.Start(addr)
}
