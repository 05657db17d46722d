package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/screenings"
	"resume-screener/internal/services/health"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const (
	rateGroupUpload = "UPLOAD"
	rateGroupRead   = "READ"

	// Reads are cheap compared to a screening run.
	readRateMultiplier = 10
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	ScreeningHandler *screenings.Handler
	Health           *health.Service
	// Limiter is shared across rebuilds in tests; nil builds a fresh one.
	Limiter          *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitPerMinute > 0 {
		rules[rateGroupUpload] = middleware.PerMinute(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
		rules[rateGroupRead] = middleware.PerMinute(cfg.RateLimitPerMinute*readRateMultiplier, cfg.RateLimitBurst*readRateMultiplier)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rules,
			DefaultGroup: rateGroupRead,
			GroupFor:     rateGroup,
			Limiter:      deps.Limiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, nil)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	api.GET("/ready", func(c *gin.Context) {
		ready, checks := healthSvc.Readiness(c.Request.Context())
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ready": ready, "checks": checks})
	})
	if deps.ScreeningHandler != nil {
		deps.ScreeningHandler.RegisterRoutes(api)
	}

	return r
}

func rateGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return rateGroupUpload
	}
	return rateGroupRead
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
