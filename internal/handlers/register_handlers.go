package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/travel_ledger/cmd/docs"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/SscSPs/travel_ledger/internal/platform/config"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metrics may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics *observability.Metrics,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	if metrics != nil && cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, cfg, services)
	setupIntegrationRoutes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// newLimiter builds an in-memory limiter from a "<limit>-<period>" rate.
func newLimiter(formatted, fallback string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid rate limit, using fallback", slog.String("rate", formatted), slog.String("fallback", fallback))
		rate, _ = limiter.NewRateFromFormatted(fallback)
	}
	return limiter.New(memory.NewStore(), rate)
}

// setupAPIV1Routes configures the JWT protected /api/v1 group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.RateLimit(newLimiter(cfg.RateLimit, "300-M"), middleware.ClientIPKey),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)

	registerTenantRoutes(v1, services)
}

// setupIntegrationRoutes configures event ingestion, authenticated by integration token.
func setupIntegrationRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	integrations := r.Group("/api/v1/integrations",
		middleware.IntegrationTokenAuth(services.IntegrationToken),
		middleware.RateLimit(newLimiter(cfg.EventRateLimit, "1200-M"), middleware.IntegrationTokenKey),
	)

	registerEventRoutes(integrations, services.Events)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
