package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"advisor/internal/ledger"
	"advisor/internal/models"
	"advisor/internal/platform"
	"advisor/internal/repository"
)

const dateLayout = "2006-01-02"

type BacktestHandler struct {
	Repo   repository.Repository
	Ledger *ledger.Ledger
}

func (h *BacktestHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/strategies/:id/backtests", h.create)
	group := r.Group("/api/v1/backtests")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("/:id/start", h.start)
	group.POST("/:id/complete", h.complete)
	group.POST("/:id/fail", h.fail)
}

func ledgerError(c *gin.Context, err error) {
	var transition *ledger.InvalidTransitionError
	var overlap *ledger.PeriodOverlapError
	switch {
	case errors.As(err, &transition), errors.As(err, &overlap):
		Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ledger.ErrStrategyNotFound), errors.Is(err, ledger.ErrBacktestNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ledger.ErrInvalidPeriod),
		errors.Is(err, ledger.ErrInvalidDateRange),
		errors.Is(err, ledger.ErrNonPositiveCapital):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

type createBacktestRequest struct {
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
	Params         datatypes.JSON  `json:"params"`
}

// @Summary Register a pending backtest for a strategy
// @Tags backtests
// @Accept json
// @Produce json
// @Success 200 {object} models.Backtest
// @Failure 400 {object} map[string]any
// @Router /api/v1/strategies/{id}/backtests [post]
func (h *BacktestHandler) create(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	strategyID := uint64Param(c, "id")
	if strategyID == 0 {
		Error(c, http.StatusBadRequest, "invalid strategy id", nil)
		return
	}
	var req createBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		Error(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		Error(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD", nil)
		return
	}
	item := models.Backtest{
		StrategyID:     strategyID,
		StartDate:      start,
		EndDate:        end,
		InitialCapital: req.InitialCapital,
		Params:         req.Params,
	}
	if err := h.Ledger.CreateBacktest(c.Request.Context(), &item); err != nil {
		ledgerError(c, err)
		return
	}
	platform.LogBestEffort(c, "advisor_backtest_created", "info", map[string]any{
		"backtest_id": item.ID,
		"strategy_id": strategyID,
	})
	Ok(c, item, nil)
}

// @Summary List backtests
// @Tags backtests
// @Produce json
// @Success 200 {array} models.Backtest
// @Router /api/v1/backtests [get]
func (h *BacktestHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListBacktestsParams{
		StrategyID: uint64QueryPtr(c, "strategyId"),
		Status:     strQueryPtr(c, "status"),
		Limit:      limit,
		Offset:     offset,
	}
	items, err := h.Repo.ListBacktests(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountBacktests(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a backtest
// @Tags backtests
// @Produce json
// @Success 200 {object} models.Backtest
// @Failure 404 {object} map[string]any
// @Router /api/v1/backtests/{id} [get]
func (h *BacktestHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetBacktestByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "backtest not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Move a backtest from pending to running
// @Tags backtests
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/v1/backtests/{id}/start [post]
func (h *BacktestHandler) start(c *gin.Context) {
	h.transition(c, "advisor_backtest_started", func(id uint64) error {
		return h.Ledger.StartBacktest(c.Request.Context(), id)
	})
}

// @Summary Complete a running backtest with its result metrics
// @Tags backtests
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/v1/backtests/{id}/complete [post]
func (h *BacktestHandler) complete(c *gin.Context) {
	var result ledger.BacktestResult
	if err := c.ShouldBindJSON(&result); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	h.transition(c, "advisor_backtest_completed", func(id uint64) error {
		return h.Ledger.CompleteBacktest(c.Request.Context(), id, result)
	})
}

// @Summary Mark a running backtest as failed
// @Tags backtests
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/v1/backtests/{id}/fail [post]
func (h *BacktestHandler) fail(c *gin.Context) {
	h.transition(c, "advisor_backtest_failed", func(id uint64) error {
		return h.Ledger.FailBacktest(c.Request.Context(), id)
	})
}

func (h *BacktestHandler) transition(c *gin.Context, action string, fn func(id uint64) error) {
	if h.Ledger == nil || h.Repo == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := fn(id); err != nil {
		ledgerError(c, err)
		return
	}
	item, err := h.Repo.GetBacktestByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	platform.LogBestEffort(c, action, "info", map[string]any{
		"backtest_id": id,
	})
	Ok(c, item, nil)
}
