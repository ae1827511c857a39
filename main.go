package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yeonz90/restaurant-api/config"
	"github.com/yeonz90/restaurant-api/controllers"
	"github.com/yeonz90/restaurant-api/middleware"
	"github.com/yeonz90/restaurant-api/models"
	"github.com/yeonz90/restaurant-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Restaurant API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Menu{}, &models.Order{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the application router with all routes mounted
func setupRouter() *gin.Engine {
	router := gin.Default()

	// Cookie-based credentials require CORS with credentials enabled
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = false
	corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		// Health check endpoint
		api.GET("/health", healthCheck)

		// Accounts
		api.POST("/sign-up", controllers.SignUp)
		api.POST("/sign-in", controllers.SignIn)

		// Categories
		api.POST("/categories", controllers.CreateCategory)
		api.GET("/categories", controllers.ListCategories)
		api.PATCH("/categories/:categoryId", controllers.UpdateCategory)
		api.DELETE("/categories/:categoryId", controllers.DeleteCategory)

		// Menus (mutations are owner-only)
		api.POST("/categories/:categoryId/menus",
			middleware.Authenticate(), middleware.RequireRole(models.RoleOwner), controllers.CreateMenu)
		api.GET("/categories/:categoryId/menus", controllers.ListMenus)
		api.GET("/categories/:categoryId/menus/:menuId", controllers.GetMenu)
		api.PATCH("/categories/:categoryId/menus/:menuId",
			middleware.Authenticate(), middleware.RequireRole(models.RoleOwner), controllers.UpdateMenu)
		api.DELETE("/categories/:categoryId/menus/:menuId",
			middleware.Authenticate(), middleware.RequireRole(models.RoleOwner), controllers.DeleteMenu)

		// Orders
		api.POST("/orders",
			middleware.Authenticate(), middleware.RequireRole(models.RoleClient), controllers.CreateOrder)
		api.GET("/orders/customer",
			middleware.Authenticate(), middleware.RequireRole(models.RoleClient), controllers.ListMyOrders)
		api.GET("/orders/owner",
			middleware.Authenticate(), middleware.RequireRole(models.RoleOwner), controllers.ListAllOrders)
		api.PATCH("/orders/:orderId/status",
			middleware.Authenticate(), middleware.RequireRole(models.RoleOwner), controllers.UpdateOrderStatus)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant API is running",
	})
}
