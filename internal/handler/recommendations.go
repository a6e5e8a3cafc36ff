package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"advisor/internal/models"
	"advisor/internal/platform"
	"advisor/internal/repository"
	"advisor/internal/service"
)

type RecommendationHandler struct {
	Repo    repository.Repository
	Service *service.AdvisorService
}

func (h *RecommendationHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/recommendations")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("/:id/acted", h.markActed)
	group.POST("/advise", h.advise)
}

func recommendationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrStrategyNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrRecommendationNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

type createRecommendationRequest struct {
	StrategyID         *uint64         `json:"strategy_id"`
	RecommendationType string          `json:"recommendation_type"`
	Symbol             string          `json:"symbol"`
	ConfidenceScore    decimal.Decimal `json:"confidence_score"`
	Reasoning          string          `json:"reasoning"`
	ExpiresAt          *time.Time      `json:"expires_at"`
}

// @Summary Create an advisory recommendation
// @Tags recommendations
// @Accept json
// @Produce json
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} map[string]any
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	userID := platform.UserIDFromGin(c)
	if userID == 0 {
		Error(c, http.StatusUnauthorized, "missing user id", nil)
		return
	}
	var req createRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := models.Recommendation{
		UserID:             userID,
		StrategyID:         req.StrategyID,
		RecommendationType: req.RecommendationType,
		Symbol:             req.Symbol,
		ConfidenceScore:    req.ConfidenceScore,
		Reasoning:          req.Reasoning,
		ExpiresAt:          req.ExpiresAt,
	}
	if err := h.Service.Create(c.Request.Context(), &item); err != nil {
		recommendationError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_recommendation_created", "info", map[string]any{
		"recommendation_id": item.ID,
		"user_id":           userID,
		"type":              item.RecommendationType,
	})
	Ok(c, item, nil)
}

// @Summary List recommendations
// @Tags recommendations
// @Produce json
// @Success 200 {array} models.Recommendation
// @Router /api/v1/recommendations [get]
func (h *RecommendationHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListRecommendationsParams{
		UserID:      uint64QueryPtr(c, "userId"),
		StrategyID:  uint64QueryPtr(c, "strategyId"),
		Type:        strQueryPtr(c, "type"),
		IsActedUpon: boolQueryPtr(c, "acted"),
		Limit:       limit,
		Offset:      offset,
	}
	if params.UserID == nil {
		if id := platform.UserIDFromGin(c); id != 0 {
			params.UserID = &id
		}
	}
	items, err := h.Repo.ListRecommendations(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountRecommendations(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a recommendation
// @Tags recommendations
// @Produce json
// @Success 200 {object} models.Recommendation
// @Failure 404 {object} map[string]any
// @Router /api/v1/recommendations/{id} [get]
func (h *RecommendationHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetRecommendationByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "recommendation not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Mark a recommendation as acted upon
// @Tags recommendations
// @Produce json
// @Success 200 {object} models.Recommendation
// @Failure 404 {object} map[string]any
// @Router /api/v1/recommendations/{id}/acted [post]
func (h *RecommendationHandler) markActed(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Service.MarkActedUpon(c.Request.Context(), id)
	if err != nil {
		recommendationError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_recommendation_acted", "info", map[string]any{
		"recommendation_id": id,
	})
	Ok(c, item, nil)
}

type adviseRequest struct {
	RiskScore int `json:"risk_score"`
}

// @Summary Store catalog-matched recommendations for the caller's risk score
// @Tags recommendations
// @Accept json
// @Produce json
// @Success 200 {array} models.Recommendation
// @Router /api/v1/recommendations/advise [post]
func (h *RecommendationHandler) advise(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	userID := platform.UserIDFromGin(c)
	if userID == 0 {
		Error(c, http.StatusUnauthorized, "missing user id", nil)
		return
	}
	var req adviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	items, err := h.Service.AdviseFromScore(c.Request.Context(), userID, req.RiskScore)
	if err != nil {
		recommendationError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_recommendations_advised", "info", map[string]any{
		"user_id":    userID,
		"risk_score": req.RiskScore,
		"count":      len(items),
	})
	Ok(c, items, nil)
}
