package api

import (
	"errors"                    // Sentinel errors
	"fmt"                       // Message formatting
	"net/http"                  // HTTP status codes
	"sweetshop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Sentinel errors distinguishing the two reasons a conditional stock
// update can touch zero rows
var (
	errSweetNotFound     = errors.New("sweet not found")
	errInsufficientStock = errors.New("insufficient stock")
)

// AmountRequest carries the unit count of a purchase or restock
type AmountRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"` // Must be a positive integer
}

// PurchaseSweetHandler decrements a sweet's stock on behalf of the caller.
// The stock check and the decrement are a single conditional UPDATE, so
// concurrent purchases against the same sweet can never oversell.
func PurchaseSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase amount"})
			return
		}
		id, ok := parseID(c) // Numeric id from the path
		if !ok {
			// A malformed id never matches a sweet
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		var sweet domain.Sweet // Holds the post-purchase record
		// Atomic check-and-decrement
		err := db.Transaction(func(tx *gorm.DB) error {
			// Decrement only while enough stock remains; the WHERE clause
			// is the stock check, evaluated by the store in one step
			res := tx.Model(&domain.Sweet{}).
				Where("id = ? AND quantity >= ?", id, req.Amount).
				Update("quantity", gorm.Expr("quantity - ?", req.Amount))
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			// Zero rows means the sweet is missing or the stock is short
			if res.RowsAffected == 0 {
				// Fetch to tell the two cases apart
				if err := tx.First(&sweet, id).Error; err != nil {
					return errSweetNotFound // No such sweet
				}
				return errInsufficientStock // Sweet exists, stock too low
			}
			// Read back the remaining quantity inside the transaction
			return tx.First(&sweet, id).Error
		})
		// Handle transaction result
		if err != nil {
			switch {
			case errors.Is(err, errSweetNotFound):
				// The sweet does not exist
				c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			case errors.Is(err, errInsufficientStock):
				// The stock check failed; the quantity is untouched
				c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock available"})
			default:
				// Log the error with context
				logrus.WithFields(logrus.Fields{
					"user_id":  userID,      // Buyer's user ID
					"sweet_id": id,          // Sweet ID
					"amount":   req.Amount,  // Purchase amount
					"error":    err.Error(), // Error message
				}).Error("Purchase failed") // Log purchase failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase sweet"})
			}
			return
		}
		// Log successful purchase
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,         // Buyer's user ID
			"sweet_id":  sweet.ID,       // Sweet ID
			"amount":    req.Amount,     // Purchase amount
			"remaining": sweet.Quantity, // Remaining stock
			"type":      "purchase",     // Mutation type
		}).Info("Sweet purchased") // Log purchase success
		invalidateSweets(c, rdb) // Drop stale catalog caches
		// Return success message plus the remaining quantity
		c.JSON(http.StatusOK, gin.H{
			"message":           fmt.Sprintf("Successfully purchased %d sweet(s)", req.Amount),
			"remainingQuantity": sweet.Quantity,
		})
	}
}

// RestockSweetHandler increments a sweet's stock (admin only)
func RestockSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restock amount"})
			return
		}
		id, ok := parseID(c) // Numeric id from the path
		if !ok {
			// A malformed id never matches a sweet
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		var sweet domain.Sweet // Holds the post-restock record
		// Atomic increment; no upper bound on stock
		err := db.Transaction(func(tx *gorm.DB) error {
			// Increment the quantity by id
			res := tx.Model(&domain.Sweet{}).
				Where("id = ?", id).
				Update("quantity", gorm.Expr("quantity + ?", req.Amount))
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			// Zero rows means the sweet does not exist
			if res.RowsAffected == 0 {
				return errSweetNotFound
			}
			// Read back the new quantity inside the transaction
			return tx.First(&sweet, id).Error
		})
		// Handle transaction result
		if err != nil {
			if errors.Is(err, errSweetNotFound) {
				// The sweet does not exist
				c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,      // Admin's user ID
				"sweet_id": id,          // Sweet ID
				"amount":   req.Amount,  // Restock amount
				"error":    err.Error(), // Error message
			}).Error("Restock failed") // Log restock failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock sweet"})
			return
		}
		// Log successful restock
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,         // Admin's user ID
			"sweet_id": sweet.ID,       // Sweet ID
			"amount":   req.Amount,     // Restock amount
			"quantity": sweet.Quantity, // New stock level
			"type":     "restock",      // Mutation type
		}).Info("Sweet restocked") // Log restock success
		invalidateSweets(c, rdb) // Drop stale catalog caches
		// Return success message plus the new quantity
		c.JSON(http.StatusOK, gin.H{
			"message":     "Sweet restocked successfully",
			"newQuantity": sweet.Quantity,
		})
	}
}
