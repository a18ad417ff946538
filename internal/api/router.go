package api

import (
	"sweetshop/internal/middleware" // Auth and admin guards

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// SetupRouter wires every route onto a Gin engine. Auth routes are open;
// everything under /api/sweets requires a valid token, and catalog
// mutations additionally require the admin role.
func SetupRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string) *gin.Engine {
	r := gin.New()                        // Gin router instance
	r.Use(gin.Logger(), gin.Recovery())   // Request logging and panic recovery

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterHandler(db)) // Registration endpoint
	auth.POST("/login", LoginHandler(db, jwtSecret)) // Login endpoint

	// Sweet routes (protected by JWT)
	sweets := r.Group("/api/sweets")
	sweets.Use(middleware.AuthMiddleware(jwtSecret)) // Every sweets route requires a token
	sweets.GET("", GetSweetsHandler(db, rdb))        // Full catalog
	sweets.GET("/search", SearchSweetsHandler(db, rdb)) // Filtered catalog
	sweets.GET("/:id", GetSweetHandler(db))          // Single sweet
	sweets.POST("/:id/purchase", PurchaseSweetHandler(db, rdb)) // Stock decrement, any user

	// Admin-only catalog mutations; AdminOnlyMiddleware runs after
	// AuthMiddleware inherited from the sweets group
	admin := sweets.Group("")
	admin.Use(middleware.AdminOnlyMiddleware())
	admin.POST("", AddSweetHandler(db, rdb))          // Create sweet
	admin.PUT("/:id", UpdateSweetHandler(db, rdb))    // Update sweet
	admin.DELETE("/:id", DeleteSweetHandler(db, rdb)) // Delete sweet
	admin.POST("/:id/restock", RestockSweetHandler(db, rdb)) // Stock increment

	return r
}
