package router

import (
	"net/http"

	"portside_pos_backend/internal/config"
	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/handlers"
	"portside_pos_backend/internal/middleware"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup wires repositories, services and handlers onto engine. The returned
// kitchen board is not started; the caller owns its lifecycle.
func Setup(engine *gin.Engine, store repositories.CollectionStore, cfg *config.Config, publisher events.Publisher) *services.KitchenBoard {
	// Initialize Repositories
	menuRepo := repositories.NewMenuRepository()
	orderRepo := repositories.NewOrderRepository()
	staffRepo := repositories.NewStaffRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	settingRepo := repositories.NewSettingRepository()

	// Initialize Services
	staffService := services.NewStaffService(store, staffRepo)
	authService := services.NewAuthService(store, staffRepo, settingRepo, staffService)
	registerService := services.NewRegisterService(store, menuRepo, orderRepo, settingRepo, publisher)
	kitchenService := services.NewKitchenService(store, orderRepo, publisher)
	dashboardService := services.NewDashboardService(store, orderRepo, staffRepo, settingRepo, cfg.Location)
	reportService := services.NewReportService(store, orderRepo, inventoryRepo, settingRepo, cfg.Location)
	inventoryService := services.NewInventoryService(store, inventoryRepo, cfg.Location)
	menuService := services.NewMenuService(store, menuRepo)
	settingService := services.NewSettingService(store, settingRepo)

	board := services.NewKitchenBoard(kitchenService, cfg.KitchenPollInterval, cfg.Location)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(registerService, board)
	kitchenHandler := handlers.NewKitchenHandler(kitchenService, board)
	reportHandler := handlers.NewReportHandler(dashboardService, reportService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	staffHandler := handlers.NewStaffHandler(staffService)
	menuHandler := handlers.NewMenuHandler(menuService)
	settingHandler := handlers.NewSettingHandler(settingService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupPOSRoutes(authenticated, orderHandler)
		SetupKitchenRoutes(authenticated, kitchenHandler)
		SetupDashboardRoutes(authenticated, reportHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupStockRoutes(authenticated, inventoryHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupSettingsRoutes(authenticated, settingHandler, authHandler)
	}

	return board
}

// SetupPublicAuthRoutes registers the routes used before signing in.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
}

// SetupAuthenticatedAuthRoutes registers the session routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.Logout)
	group.GET("/me", authHandler.Me)
}
