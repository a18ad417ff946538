package api

import (
	"context"                   // Context for Redis operations
	"net/http"                  // HTTP status codes
	"strconv"                   // String conversion
	"strings"                   // String manipulation
	"sweetshop/internal/domain" // Importing domain models
	"sweetshop/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// parseID converts the :id path parameter into a numeric key. The raw
// string must never reach the store as a condition; anything non-numeric
// resolves to no sweet.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64) // Parse the path parameter
	if err != nil {
		return 0, false // Not a numeric id
	}
	return uint(id), true
}

// SweetRequest carries the writable fields of a sweet. Pointers distinguish
// "field absent" from "zero value" so updates can merge partially.
type SweetRequest struct {
	Name        *string  `json:"name"`        // Sweet name
	Category    *string  `json:"category"`    // Category
	Price       *float64 `json:"price"`       // Unit price
	Quantity    *int     `json:"quantity"`    // Stock on hand
	Description *string  `json:"description"` // Optional description
}

// apply merges the provided fields onto the sweet
func (r *SweetRequest) apply(s *domain.Sweet) {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name) // Set name
	}
	if r.Category != nil {
		s.Category = *r.Category // Set category
	}
	if r.Price != nil {
		s.Price = *r.Price // Set price
	}
	if r.Quantity != nil {
		s.Quantity = *r.Quantity // Set quantity
	}
	if r.Description != nil {
		s.Description = strings.TrimSpace(*r.Description) // Set description
	}
}

// AddSweetHandler creates a new catalog entry (admin only)
func AddSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SweetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Malformed bodies surface as the generic add failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add sweet"})
			return
		}
		var sweet domain.Sweet // New sweet record
		req.apply(&sweet)      // Copy request fields onto it
		// Validate field constraints before persisting
		if errs := sweet.Validate(); len(errs) > 0 {
			// Log the violations; the caller only sees a generic message
			logrus.WithFields(logrus.Fields{
				"name":   sweet.Name, // Attempted name
				"errors": errs,       // Violated constraints
			}).Error("Sweet validation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add sweet"})
			return
		}
		// Persist the new sweet
		if err := db.Create(&sweet).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  sweet.Name,  // Attempted name
				"error": err.Error(), // Error message
			}).Error("Failed to add sweet") // Log store failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add sweet"})
			return
		}
		invalidateSweets(c, rdb)            // Drop stale catalog caches
		c.JSON(http.StatusCreated, sweet)   // Return the created sweet
	}
}

// GetSweetsHandler returns the full catalog
func GetSweetsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var sweets []domain.Sweet   // Slice to hold the catalog
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, utils.SweetsAllKey, &sweets)
		if err == nil && found {
			c.JSON(http.StatusOK, sweets) // Return cached catalog
			return
		}
		// Fetch the catalog from the database
		if err := db.Find(&sweets).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sweets"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.SweetsAllKey, sweets, utils.CacheTTL) // Cache the catalog
		c.JSON(http.StatusOK, sweets)                                            // Return the catalog
	}
}

// SearchSweetsHandler filters the catalog by name, category and price range
func SearchSweetsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()                                     // Context for Redis operations
		cacheKey := utils.SweetsSearchKey + c.Request.URL.RawQuery      // One cache entry per query string
		var sweets []domain.Sweet                                       // Slice to hold matches
		found, err := utils.GetCache(ctx, rdb, cacheKey, &sweets)       // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, sweets) // Return cached matches
			return
		}
		query := db.Model(&domain.Sweet{}) // Start building the query
		// Case-insensitive substring match on the name
		if name := c.Query("name"); name != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		// Exact category match
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		minPrice := c.Query("minPrice") // Lower price bound
		maxPrice := c.Query("maxPrice") // Upper price bound
		// Price range applies when either bound is given
		if minPrice != "" || maxPrice != "" {
			lo, err := strconv.ParseFloat(minPrice, 64) // Parse lower bound
			if err != nil {
				lo = 0 // Default lower bound
			}
			hi, err := strconv.ParseFloat(maxPrice, 64) // Parse upper bound
			if err != nil {
				hi = 99999 // Default upper bound
			}
			query = query.Where("price >= ? AND price <= ?", lo, hi) // Filter by price range
		}
		// Run the search
		if err := query.Find(&sweets).Error; err != nil {
			// If the search fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search sweets"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, sweets, utils.CacheTTL) // Cache the matches
		c.JSON(http.StatusOK, sweets)                                  // Return the matches
	}
}

// GetSweetHandler returns a single sweet by id
func GetSweetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Numeric id from the path
		if !ok {
			// A malformed id never matches a sweet
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		var sweet domain.Sweet // Sweet record
		// Fetch the sweet by the path id
		if err := db.First(&sweet, id).Error; err != nil {
			// If absent, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		c.JSON(http.StatusOK, sweet) // Return the sweet
	}
}

// UpdateSweetHandler merges the provided fields onto a sweet (admin only)
func UpdateSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Numeric id from the path
		if !ok {
			// A malformed id never matches a sweet
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		var sweet domain.Sweet // Existing record
		// Fetch the sweet by the path id
		if err := db.First(&sweet, id).Error; err != nil {
			// If absent, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		var req SweetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Malformed bodies surface as the generic update failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sweet"})
			return
		}
		req.apply(&sweet) // Merge provided fields onto the record
		// Re-validate the merged record
		if errs := sweet.Validate(); len(errs) > 0 {
			logrus.WithFields(logrus.Fields{
				"sweet_id": sweet.ID, // Sweet ID
				"errors":   errs,     // Violated constraints
			}).Error("Sweet validation failed") // Log the violations
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sweet"})
			return
		}
		// Persist the merged record
		if err := db.Save(&sweet).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"sweet_id": sweet.ID,    // Sweet ID
				"error":    err.Error(), // Error message
			}).Error("Failed to update sweet") // Log store failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sweet"})
			return
		}
		invalidateSweets(c, rdb)     // Drop stale catalog caches
		c.JSON(http.StatusOK, sweet) // Return the updated sweet
	}
}

// DeleteSweetHandler removes a sweet from the catalog (admin only)
func DeleteSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Numeric id from the path
		if !ok {
			// A malformed id never matches a sweet
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		var sweet domain.Sweet // Existing record
		// Fetch the sweet by the path id
		if err := db.First(&sweet, id).Error; err != nil {
			// If absent, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		// Delete the record
		if err := db.Delete(&sweet).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"sweet_id": sweet.ID,    // Sweet ID
				"error":    err.Error(), // Error message
			}).Error("Failed to delete sweet") // Log store failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sweet"})
			return
		}
		invalidateSweets(c, rdb)                                          // Drop stale catalog caches
		c.JSON(http.StatusOK, gin.H{"message": "Sweet deleted successfully"}) // Return success message
	}
}

// invalidateSweets drops the catalog caches after a mutation. Cache errors
// are logged and swallowed; the mutation already succeeded.
func invalidateSweets(c *gin.Context, rdb *redis.Client) {
	if err := utils.InvalidateSweetCache(context.Background(), rdb); err != nil {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Mutating route
			"error": err.Error(),  // Error message
		}).Warn("Failed to invalidate sweet cache")
	}
}
