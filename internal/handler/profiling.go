package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"advisor/internal/profiling"
)

type ProfilingHandler struct {
	Service *profiling.Service
}

func (h *ProfilingHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/profiling")
	group.POST("/quick-assessment", h.quickAssessment)
	group.GET("/recommendations", h.recommendations)
	group.GET("/enums/risk-tolerance", h.riskToleranceOptions)
	group.GET("/enums/investment-goals", h.investmentGoalOptions)
}

// @Summary Quick risk assessment
// @Tags profiling
// @Accept json
// @Produce json
// @Param request body profiling.Input true "questionnaire"
// @Success 200 {object} profiling.AssessmentResult
// @Failure 400 {object} map[string]any
// @Router /api/v1/profiling/quick-assessment [post]
func (h *ProfilingHandler) quickAssessment(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "profiling unavailable", nil)
		return
	}
	var in profiling.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	result, err := h.Service.ProcessAssessment(in)
	if err != nil {
		var verr *profiling.ValidationError
		if errors.As(err, &verr) {
			Error(c, http.StatusBadRequest, "invalid assessment input", map[string]any{"fields": verr.Fields})
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary Catalog recommendations for a risk score
// @Tags profiling
// @Produce json
// @Param riskScore query int false "risk score" default(50)
// @Success 200 {array} profiling.Archetype
// @Router /api/v1/profiling/recommendations [get]
func (h *ProfilingHandler) recommendations(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "profiling unavailable", nil)
		return
	}
	score := intQuery(c, "riskScore", 50)
	Ok(c, h.Service.Recommendations(score), nil)
}

type enumOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// @Summary Risk tolerance options
// @Tags profiling
// @Produce json
// @Success 200 {array} handler.enumOption
// @Router /api/v1/profiling/enums/risk-tolerance [get]
func (h *ProfilingHandler) riskToleranceOptions(c *gin.Context) {
	options := make([]enumOption, 0, len(profiling.Tolerances))
	for _, t := range profiling.Tolerances {
		options = append(options, enumOption{
			Value:       t.String(),
			Label:       profiling.FormatEnumLabel(t.String()),
			Description: t.Description(),
		})
	}
	Ok(c, options, nil)
}

// @Summary Investment goal options
// @Tags profiling
// @Produce json
// @Success 200 {array} handler.enumOption
// @Router /api/v1/profiling/enums/investment-goals [get]
func (h *ProfilingHandler) investmentGoalOptions(c *gin.Context) {
	options := make([]enumOption, 0, len(profiling.InvestmentGoals))
	for _, g := range profiling.InvestmentGoals {
		options = append(options, enumOption{
			Value: g,
			Label: profiling.FormatEnumLabel(g),
		})
	}
	Ok(c, options, nil)
}
