package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 公開側。いまACTIVEなバナー/プロモだけを返す。
type CampaignHandler struct {
	uc *usecase.CampaignUsecase
}

// DI
func NewCampaignHandler(uc *usecase.CampaignUsecase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

func (h *CampaignHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/banners", h.listActiveBanners)
	e.GET("/promos", h.listActivePromos)
}

func (h *CampaignHandler) listActiveBanners(c echo.Context) error {
	outs, err := h.uc.ListActive(c.Request().Context(), model.CampaignKindBanner)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *CampaignHandler) listActivePromos(c echo.Context) error {
	outs, err := h.uc.ListActive(c.Request().Context(), model.CampaignKindPromo)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}
