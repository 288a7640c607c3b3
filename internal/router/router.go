package router

import (
	"net/http"

	"hospitality_backend/internal/config"
	"hospitality_backend/internal/handlers"
	"hospitality_backend/internal/middleware"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sqlx.DB, cfg *config.Config) {
	// Initialize Repositories
	tx := repositories.NewTransactor(db)
	authRepo := repositories.NewAuthRepository()
	staffRepo := repositories.NewStaffRepository()
	drinkRepo := repositories.NewDrinkRepository()
	bottleRepo := repositories.NewOpenBottleRepository()
	salesRepo := repositories.NewSalesRepository()
	purchaseRepo := repositories.NewPurchaseRepository()
	movementRepo := repositories.NewInventoryMovementRepository()
	carwashRepo := repositories.NewCarwashRepository()

	// Initialize Services
	tokens := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.TTL)

	authService := services.NewAuthService(authRepo, staffRepo, tx, tokens)
	staffService := services.NewStaffService(staffRepo, authRepo, tx)
	drinkService := services.NewDrinkService(drinkRepo, purchaseRepo, movementRepo, staffRepo, tx)
	salesService := services.NewSalesService(drinkRepo, bottleRepo, salesRepo, movementRepo, staffRepo, tx)
	carwashService := services.NewCarwashService(carwashRepo, staffRepo, tx, cfg.Carwash.ServiceTypes, cfg.Carwash.Location())

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens.TTL())
	staffHandler := handlers.NewStaffHandler(staffService)
	drinkHandler := handlers.NewDrinkHandler(drinkService, salesService)
	carwashHandler := handlers.NewCarwashHandler(carwashService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	// Login is the only public route.
	SetupPublicAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated, authHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupDrinkRoutes(authenticated, drinkHandler)
		SetupCarwashRoutes(authenticated, carwashHandler)
	}
}
