package router

import (
	"portside_pos_backend/internal/handlers"
	"portside_pos_backend/internal/middleware"
	"portside_pos_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPOSRoutes sets up the register routes. Every signed-in role may ring up orders.
func SetupPOSRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	posRoutes := authenticatedGroup.Group("/pos")
	{
		posRoutes.GET("/menu", orderHandler.GetMenu)
		posRoutes.GET("/cart", orderHandler.GetCart)
		posRoutes.POST("/cart/lines", orderHandler.AddCartLine)
		posRoutes.DELETE("/cart/lines/:index", orderHandler.RemoveCartLine)
		posRoutes.DELETE("/cart", orderHandler.ClearCart)
		posRoutes.PUT("/order-number", orderHandler.SetOrderNumber)
		posRoutes.POST("/checkout", orderHandler.Checkout)
	}
}

// SetupKitchenRoutes sets up the kitchen display routes.
func SetupKitchenRoutes(authenticatedGroup *gin.RouterGroup, kitchenHandler *handlers.KitchenHandler) {
	kitchenRoutes := authenticatedGroup.Group("/kitchen")
	{
		kitchenRoutes.GET("/tickets", kitchenHandler.GetTickets)
		kitchenRoutes.GET("/stream", kitchenHandler.Stream)
		kitchenRoutes.POST("/tickets/complete", kitchenHandler.CompleteByTimestamp)
		kitchenRoutes.POST("/tickets/:ref/complete", kitchenHandler.CompleteByRef)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.ManagementOnly())
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardSummary)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.ManagementOnly())
	{
		reportRoutes.GET("/daily", reportHandler.GetDailyReport)
		reportRoutes.GET("/daily/export", reportHandler.ExportDailyReport)
	}
}

// SetupStockRoutes sets up the stock and expense routes.
func SetupStockRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	stockRoutes := authenticatedGroup.Group("/stocks")
	stockRoutes.Use(middleware.ManagementOnly())
	{
		stockRoutes.GET("", inventoryHandler.GetStock)
		stockRoutes.POST("", inventoryHandler.CreateStockItem)
		stockRoutes.PUT("/:id", inventoryHandler.UpdateStockItem)
		stockRoutes.DELETE("/:id", inventoryHandler.DeleteStockItem)
		stockRoutes.POST("/:id/usage", inventoryHandler.RecordUsage)
	}
	authenticatedGroup.GET("/expenses", middleware.ManagementOnly(), inventoryHandler.GetExpenses)
}

// SetupStaffRoutes sets up the staff routes.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	staffRoutes.Use(middleware.ManagementOnly())
	{
		staffRoutes.GET("", staffHandler.GetStaffMembers)
		staffRoutes.POST("", staffHandler.CreateStaffMember)
		staffRoutes.DELETE("/:id", staffHandler.DeleteStaffMember)
	}
}

// SetupMenuRoutes sets up the menu editor routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticatedGroup.Group("/menu")
	menuRoutes.Use(middleware.ManagementOnly())
	{
		menuRoutes.GET("/categories", menuHandler.GetCategories)
		menuRoutes.POST("/categories", menuHandler.CreateCategory)
		menuRoutes.GET("/items", menuHandler.GetItems)
		menuRoutes.POST("/items", menuHandler.CreateItem)
		menuRoutes.PUT("/items/:id", menuHandler.UpdateItem)
		menuRoutes.DELETE("/items/:category/:id", menuHandler.DeleteItem)
	}
}

// SetupSettingsRoutes sets up the settings routes. Anyone signed in can read
// the tax rate; only management changes it, and only the admin changes the
// admin login.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler, authHandler *handlers.AuthHandler) {
	settingsRoutes := authenticatedGroup.Group("/settings")
	{
		settingsRoutes.GET("", settingHandler.GetSettings)
		settingsRoutes.PUT("", middleware.ManagementOnly(), settingHandler.UpdateSettings)
		settingsRoutes.PUT("/admin", middleware.RoleAuthMiddleware(models.RoleAdmin), authHandler.ChangeAdminCredentials)
	}
}
