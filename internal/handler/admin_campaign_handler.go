package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SuccessResponse は Success { message: string } の形に寄せます。
type SuccessResponse struct {
	Message string `json:"message"`
}

// 4種類のキャンペーンの管理画面向けCRUD。
// kindだけ変えて同じハンドラを使い回す。
type AdminCampaignHandler struct {
	uc *usecase.CampaignUsecase
}

// DI
func NewAdminCampaignHandler(uc *usecase.CampaignUsecase) *AdminCampaignHandler {
	return &AdminCampaignHandler{uc: uc}
}

type CampaignRequest struct {
	Name    string     `json:"name"`
	Code    string     `json:"code"`
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	TargetType string  `json:"target_type"`
	TargetIDs  []int64 `json:"target_ids"`

	EligibilityType    string   `json:"eligibility_type"`
	EligibilityUserIDs []int64  `json:"eligibility_user_ids"`
	EligibilityRoles   []string `json:"eligibility_roles"`
	MinimumType        string   `json:"minimum_type"`
	MinimumValue       *int64   `json:"minimum_value"`
	LimitUse           *int64   `json:"limit_use"`
	LimitOnce          bool     `json:"limit_once"`

	ValueType string `json:"value_type"`
	Value     *int64 `json:"value"`
}

type CampaignActiveRequest struct {
	Active bool `json:"active"`
}

func (h *AdminCampaignHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	h.register(admin, "/banners", model.CampaignKindBanner)
	h.register(admin, "/promos", model.CampaignKindPromo)
	h.register(admin, "/discounts", model.CampaignKindDiscount)
	h.register(admin, "/free-shippings", model.CampaignKindFreeShipping)
}

func (h *AdminCampaignHandler) register(g *echo.Group, prefix string, kind model.CampaignKind) {
	g.GET(prefix, h.list(kind))
	g.POST(prefix, h.create(kind))
	g.GET(prefix+"/:id", h.detail(kind))
	g.PUT(prefix+"/:id", h.update(kind))
	g.DELETE(prefix+"/:id", h.delete(kind))
	g.PUT(prefix+"/:id/active", h.setActive)
}

func (h *AdminCampaignHandler) list(kind model.CampaignKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := 1
		if v := c.QueryParam("page"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
			}
			page = p
		}

		limit := 50
		if v := c.QueryParam("limit"); v != "" {
			l, err := strconv.Atoi(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			}
			limit = l
		}

		out, err := h.uc.List(c.Request().Context(), kind, usecase.ListCampaignsInput{
			Page:   page,
			Limit:  limit,
			Q:      c.QueryParam("q"),
			Status: c.QueryParam("status"),
		})
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, out)
	}
}

func (h *AdminCampaignHandler) create(kind model.CampaignKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req CampaignRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
		if req.StartAt.IsZero() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_at"})
		}

		adminID, ok := getUserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}

		out, err := h.uc.Create(c.Request().Context(), adminID, kind, toCampaignInput(req))
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusCreated, out)
	}
}

func (h *AdminCampaignHandler) detail(kind model.CampaignKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}

		out, err := h.uc.Get(c.Request().Context(), kind, id)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, out)
	}
}

func (h *AdminCampaignHandler) update(kind model.CampaignKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}

		var req CampaignRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
		if req.StartAt.IsZero() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_at"})
		}

		adminID, ok := getUserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}

		out, err := h.uc.Update(c.Request().Context(), adminID, kind, id, toCampaignInput(req))
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, out)
	}
}

func (h *AdminCampaignHandler) delete(kind model.CampaignKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}

		adminID, ok := getUserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}

		if err := h.uc.Delete(c.Request().Context(), adminID, kind, id); err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
	}
}

// 有効/無効の切り替え。kindを問わずIDだけで動く。
func (h *AdminCampaignHandler) setActive(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CampaignActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.SetActive(c.Request().Context(), adminID, id, req.Active); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func toCampaignInput(req CampaignRequest) usecase.CreateCampaignInput {
	return usecase.CreateCampaignInput{
		Name:    req.Name,
		Code:    req.Code,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,

		TargetType: req.TargetType,
		TargetIDs:  req.TargetIDs,

		EligibilityType:    req.EligibilityType,
		EligibilityUserIDs: req.EligibilityUserIDs,
		EligibilityRoles:   req.EligibilityRoles,
		MinimumType:        req.MinimumType,
		MinimumValue:       req.MinimumValue,
		LimitUse:           req.LimitUse,
		LimitOnce:          req.LimitOnce,

		ValueType: req.ValueType,
		Value:     req.Value,
	}
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
