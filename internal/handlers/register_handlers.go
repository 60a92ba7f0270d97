package handlers

import (
	"github.com/OpenPledge/crowdfund_ledger/cmd/docs"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/config"
	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public session route
	registerAuthRoutes(r, services.Token)

	// Queries are public; commands require a session token.
	setupQueryRoutes(r, services)
	setupCommandRoutes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators adds the ethaddr binding tag used by address
// fields in request DTOs.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ethaddr", func(fl validator.FieldLevel) bool {
			return utils.IsValidAddress(fl.Field().String())
		})
	}
}

// setupQueryRoutes configures the unauthenticated read surface under /api/v1.
func setupQueryRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerCampaignReadRoutes(v1, services.Campaign)
	registerPledgeReadRoutes(v1, services.Pledge)
	registerSettlementReadRoutes(v1, services.Settlement)
	registerRegistryReadRoutes(v1, services.Registry, services.Campaign, services.Settlement)
	registerEventRoutes(v1, services.Event)
}

// setupCommandRoutes configures the mutating surface under /api/v1 behind
// the auth middleware.
func setupCommandRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerCampaignCommandRoutes(v1, services.Campaign)
	registerPledgeCommandRoutes(v1, services.Pledge)
	registerSettlementCommandRoutes(v1, services.Settlement)
	registerRegistryCommandRoutes(v1, services.Registry, services.Campaign, services.Settlement)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
