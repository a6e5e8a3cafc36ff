package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"advisor/internal/ledger"
	"advisor/internal/models"
	"advisor/internal/platform"
	"advisor/internal/repository"
)

type PerformanceHandler struct {
	Ledger *ledger.Ledger
}

func (h *PerformanceHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/strategies/:id/performance", h.record)
	r.GET("/api/v1/strategies/:id/performance", h.history)
}

type recordPerformanceRequest struct {
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	TotalReturn      decimal.Decimal `json:"total_return"`
	AnnualizedReturn decimal.Decimal `json:"annualized_return"`
	Volatility       decimal.Decimal `json:"volatility"`
	SharpeRatio      decimal.Decimal `json:"sharpe_ratio"`
	MaxDrawdown      decimal.Decimal `json:"max_drawdown"`
	WinRate          decimal.Decimal `json:"win_rate"`
}

// @Summary Record a performance snapshot for a strategy
// @Tags performance
// @Accept json
// @Produce json
// @Success 200 {object} models.StrategyPerformance
// @Failure 409 {object} map[string]any
// @Router /api/v1/strategies/{id}/performance [post]
func (h *PerformanceHandler) record(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	strategyID := uint64Param(c, "id")
	if strategyID == 0 {
		Error(c, http.StatusBadRequest, "invalid strategy id", nil)
		return
	}
	var req recordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	start, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		Error(c, http.StatusBadRequest, "period_start must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		Error(c, http.StatusBadRequest, "period_end must be YYYY-MM-DD", nil)
		return
	}
	item := models.StrategyPerformance{
		StrategyID:       strategyID,
		PeriodStart:      start,
		PeriodEnd:        end,
		TotalReturn:      req.TotalReturn,
		AnnualizedReturn: req.AnnualizedReturn,
		Volatility:       req.Volatility,
		SharpeRatio:      req.SharpeRatio,
		MaxDrawdown:      req.MaxDrawdown,
		WinRate:          req.WinRate,
	}
	if err := h.Ledger.RecordPerformance(c.Request.Context(), &item); err != nil {
		ledgerError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_performance_recorded", "info", map[string]any{
		"strategy_id":  strategyID,
		"period_start": req.PeriodStart,
		"period_end":   req.PeriodEnd,
	})
	Ok(c, item, nil)
}

// @Summary List performance history for a strategy ordered by period
// @Tags performance
// @Produce json
// @Success 200 {array} models.StrategyPerformance
// @Router /api/v1/strategies/{id}/performance [get]
func (h *PerformanceHandler) history(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	strategyID := uint64Param(c, "id")
	if strategyID == 0 {
		Error(c, http.StatusBadRequest, "invalid strategy id", nil)
		return
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	items, err := h.Ledger.History(c.Request.Context(), repository.ListPerformanceParams{
		StrategyID: strategyID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"limit": limit, "offset": offset})
}
