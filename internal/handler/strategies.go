package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"advisor/internal/allocation"
	"advisor/internal/models"
	"advisor/internal/platform"
	"advisor/internal/repository"
	"advisor/internal/service"
)

type StrategyHandler struct {
	Repo    repository.Repository
	Service *service.StrategyService
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/strategies")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
	group.PUT("/:id/allocations", h.replaceAllocations)
	group.POST("/:id/activate", h.activate)
	group.POST("/:id/deactivate", h.deactivate)
}

type allocationRequest struct {
	Symbol           string           `json:"symbol"`
	TargetPercentage decimal.Decimal  `json:"target_percentage"`
	MinPercentage    *decimal.Decimal `json:"min_percentage"`
	MaxPercentage    *decimal.Decimal `json:"max_percentage"`
}

func (r allocationRequest) model() models.StrategyAllocation {
	return models.StrategyAllocation{
		Symbol:           r.Symbol,
		TargetPercentage: r.TargetPercentage,
		MinPercentage:    r.MinPercentage,
		MaxPercentage:    r.MaxPercentage,
	}
}

type createStrategyRequest struct {
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	StrategyType       string              `json:"strategy_type"`
	RiskLevel          string              `json:"risk_level"`
	TargetReturn       decimal.Decimal     `json:"target_return"`
	MaxDrawdown        decimal.Decimal     `json:"max_drawdown"`
	RebalanceFrequency string              `json:"rebalance_frequency"`
	IsPublic           bool                `json:"is_public"`
	Allocations        []allocationRequest `json:"allocations"`
}

// strategyError maps core error types onto HTTP statuses. Allocation
// invariant violations are 422 so clients can tell them from malformed
// bodies.
func strategyError(c *gin.Context, err error) {
	var bound *allocation.BoundViolationError
	var sum *allocation.SumMismatchError
	switch {
	case errors.Is(err, allocation.ErrEmptySet), errors.As(err, &bound), errors.As(err, &sum):
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidInput):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrStrategyNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrVersionConflict):
		Error(c, http.StatusConflict, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

// @Summary Create a strategy with its allocation set
// @Tags strategies
// @Accept json
// @Produce json
// @Success 200 {object} models.Strategy
// @Failure 422 {object} map[string]any
// @Router /api/v1/strategies [post]
func (h *StrategyHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	userID := platform.UserIDFromGin(c)
	if userID == 0 {
		Error(c, http.StatusUnauthorized, "missing user id", nil)
		return
	}
	var req createStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := models.Strategy{
		UserID:             userID,
		Name:               req.Name,
		Description:        req.Description,
		StrategyType:       req.StrategyType,
		RiskLevel:          req.RiskLevel,
		TargetReturn:       req.TargetReturn,
		MaxDrawdown:        req.MaxDrawdown,
		RebalanceFrequency: req.RebalanceFrequency,
		IsActive:           true,
		IsPublic:           req.IsPublic,
	}
	for _, a := range req.Allocations {
		item.Allocations = append(item.Allocations, a.model())
	}
	if err := h.Service.Create(c.Request.Context(), &item); err != nil {
		strategyError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_strategy_created", "info", map[string]any{
		"strategy_id": item.ID,
		"user_id":     userID,
	})
	Ok(c, item, nil)
}

// @Summary List strategies
// @Tags strategies
// @Produce json
// @Success 200 {array} models.Strategy
// @Router /api/v1/strategies [get]
func (h *StrategyHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListStrategiesParams{
		UserID:   uint64QueryPtr(c, "userId"),
		IsActive: boolQueryPtr(c, "active"),
		IsPublic: boolQueryPtr(c, "public"),
		Limit:    limit,
		Offset:   offset,
		OrderBy:  "created_at",
		Asc:      boolPtr(false),
	}
	if params.UserID == nil {
		if id := platform.UserIDFromGin(c); id != 0 {
			params.UserID = &id
		}
	}
	items, err := h.Repo.ListStrategies(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountStrategies(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a strategy
// @Tags strategies
// @Produce json
// @Success 200 {object} models.Strategy
// @Failure 404 {object} map[string]any
// @Router /api/v1/strategies/{id} [get]
func (h *StrategyHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetStrategyByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "strategy not found", nil)
		return
	}
	Ok(c, item, nil)
}

type updateStrategyRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	StrategyType       *string          `json:"strategy_type"`
	RiskLevel          *string          `json:"risk_level"`
	TargetReturn       *decimal.Decimal `json:"target_return"`
	MaxDrawdown        *decimal.Decimal `json:"max_drawdown"`
	RebalanceFrequency *string          `json:"rebalance_frequency"`
	IsPublic           *bool            `json:"is_public"`
}

// @Summary Update strategy metadata
// @Tags strategies
// @Accept json
// @Produce json
// @Success 200 {object} models.Strategy
// @Router /api/v1/strategies/{id} [put]
func (h *StrategyHandler) update(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req updateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.StrategyType != nil {
		fields["strategy_type"] = *req.StrategyType
	}
	if req.RiskLevel != nil {
		fields["risk_level"] = *req.RiskLevel
	}
	if req.TargetReturn != nil {
		fields["target_return"] = *req.TargetReturn
	}
	if req.MaxDrawdown != nil {
		fields["max_drawdown"] = *req.MaxDrawdown
	}
	if req.RebalanceFrequency != nil {
		fields["rebalance_frequency"] = *req.RebalanceFrequency
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}
	if len(fields) == 0 {
		Error(c, http.StatusBadRequest, "no fields to update", nil)
		return
	}
	item, err := h.Service.Update(c.Request.Context(), id, fields)
	if err != nil {
		strategyError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_strategy_updated", "info", map[string]any{
		"strategy_id": id,
	})
	Ok(c, item, nil)
}

// @Summary Delete a strategy and its allocations
// @Tags strategies
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id} [delete]
func (h *StrategyHandler) remove(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		strategyError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_strategy_deleted", "info", map[string]any{
		"strategy_id": id,
	})
	Ok(c, map[string]any{"id": id, "deleted": true}, nil)
}

type replaceAllocationsRequest struct {
	Version     uint64              `json:"version"`
	Allocations []allocationRequest `json:"allocations"`
}

// @Summary Replace a strategy's allocation set
// @Tags strategies
// @Accept json
// @Produce json
// @Success 200 {object} models.Strategy
// @Failure 409 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /api/v1/strategies/{id}/allocations [put]
func (h *StrategyHandler) replaceAllocations(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req replaceAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	items := make([]models.StrategyAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		items = append(items, a.model())
	}
	item, err := h.Service.ReplaceAllocations(c.Request.Context(), id, req.Version, items)
	if err != nil {
		strategyError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_allocations_replaced", "info", map[string]any{
		"strategy_id": id,
	})
	Ok(c, item, nil)
}

func (h *StrategyHandler) activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *StrategyHandler) deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *StrategyHandler) setActive(c *gin.Context, active bool) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Service.SetActive(c.Request.Context(), id, active); err != nil {
		strategyError(c, err)
		return
	}
	action := "advisor_strategy_deactivated"
	if active {
		action = "advisor_strategy_activated"
	}
	platform.LogBestEffort(c, action, "info", map[string]any{
		"strategy_id": id,
		"active":      active,
	})
	Ok(c, map[string]any{"id": id, "is_active": active}, nil)
}
