package platform

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Advisor Service

Risk profiling and portfolio strategy advisory, accessed via the brokerage
platform gateway.

## Access via Gateway

Base path (through gateway):
- /api/v1/services/advisor/

Examples:
- GET /api/v1/services/advisor/healthz
- POST /api/v1/services/advisor/api/v1/profiling/quick-assessment
- GET /api/v1/services/advisor/api/v1/profiling/recommendations?riskScore=70
- GET /api/v1/services/advisor/api/v1/strategies

## Auth

All /api/* routes require a Bearer token (validated by the gateway). The
gateway injects the authenticated user id as X-Brokerage-User. Health
endpoints are public.

## Notable Routes (upstream)

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- POST /api/v1/profiling/quick-assessment
- GET /api/v1/profiling/recommendations
- GET /api/v1/profiling/enums/risk-tolerance
- GET /api/v1/profiling/enums/investment-goals
- GET /api/v1/strategies
- PUT /api/v1/strategies/:id/allocations
- POST /api/v1/strategies/:id/backtests
- POST /api/v1/strategies/:id/performance
- GET /api/v1/recommendations
`)
	})
}
