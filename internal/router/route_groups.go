package router

import (
	"hospitality_backend/internal/handlers"
	"hospitality_backend/internal/middleware"
	"hospitality_backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.PATCH("/change-password", authHandler.ChangePassword)
	group.GET("/me", authHandler.Me)
}

// SetupStaffRoutes sets up the staff directory routes. Registration is open
// to any signed-in user; removal and listing need the manager role.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	authenticatedGroup.POST("/create-staff", staffHandler.CreateStaffMember)

	managerRoutes := authenticatedGroup.Group("")
	managerRoutes.Use(middleware.RoleAuthMiddleware(models.RoleManager))
	{
		managerRoutes.DELETE("/delete-staff/:id", staffHandler.DeleteStaffMember)
		managerRoutes.GET("/staff", staffHandler.GetStaffMembers)
	}
}

// SetupDrinkRoutes sets up the bar routes: catalog, sales, open bottles,
// purchases and the stock audit trail.
func SetupDrinkRoutes(authenticatedGroup *gin.RouterGroup, drinkHandler *handlers.DrinkHandler) {
	drinkRoutes := authenticatedGroup.Group("/drinks")
	{
		drinkRoutes.POST("/add", drinkHandler.AddDrink)
		drinkRoutes.GET("", drinkHandler.ListDrinks)
		drinkRoutes.PUT("/:id/edit", drinkHandler.EditDrink)
		drinkRoutes.DELETE("/:id/delete", drinkHandler.DeleteDrink)
		drinkRoutes.POST("/:id/sell/retail", drinkHandler.SellRetail)

		drinkRoutes.POST("/open-bottle/:id", drinkHandler.OpenBottle)
		drinkRoutes.GET("/open-bottle", drinkHandler.ListOpenBottles)
		drinkRoutes.POST("/sell-tot/:bottle_id", drinkHandler.SellTot)
		drinkRoutes.PUT("/tot-sales/:id/edit", drinkHandler.EditTotSale)

		drinkRoutes.POST("/record-purchase/:id", drinkHandler.RecordPurchase)
		drinkRoutes.GET("/stock-movements", drinkHandler.GetStockMovements)
	}
}

// SetupCarwashRoutes sets up the carwash income routes.
func SetupCarwashRoutes(authenticatedGroup *gin.RouterGroup, carwashHandler *handlers.CarwashHandler) {
	carwashRoutes := authenticatedGroup.Group("/carwash")
	{
		carwashRoutes.POST("/add-income", carwashHandler.AddIncome)
		carwashRoutes.GET("/income", carwashHandler.ListIncome)
		carwashRoutes.PUT("/income/:id/edit", carwashHandler.EditIncome)
		carwashRoutes.DELETE("/income/:id/delete", carwashHandler.DeleteIncome)
	}
}
