package api

import (
	"net/http"                  // HTTP status codes
	"strings"                   // String manipulation
	"sweetshop/internal/domain" // Importing domain models
	"sweetshop/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	IsAdmin  bool   `json:"isAdmin"`                     // Optional admin flag, defaults to false
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Normalize email for uniqueness
		// Reject duplicate registrations up front
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			// If a user with this email exists, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		// Hash the password before storing it
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Create the user record
		user := domain.User{Name: req.Name, Email: email, Password: string(hash), IsAdmin: req.IsAdmin}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Log the store error with context
			logrus.WithFields(logrus.Fields{
				"email": email,       // Attempted email
				"error": err.Error(), // Error message
			}).Error("Failed to register user") // Log registration failure
			// The unique index catches a concurrent duplicate insert
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		// Return the public projection; password and role are withheld
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user.Public()})
	}
}

// LoginHandler authenticates a user and returns a signed session token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
			// Same message as a wrong password so emails cannot be enumerated
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		// Generate JWT token carrying the user's ID and role
		token, err := utils.GenerateJWT(user.ID, user.IsAdmin, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
			return
		}
		// Persist the record again; a future last-login field would be set here
		if err := db.Save(&user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Warn("Failed to save user on login") // Login still succeeds
		}
		// Return the token and the public projection of the user
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": user.Public()})
	}
}
