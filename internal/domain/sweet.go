package domain

import (
	"fmt"  // Error message formatting
	"time" // Timestamps
)

// Categories a sweet may belong to
const (
	CategoryMilk     = "Milk"
	CategoryDry      = "Dry"
	CategoryFestival = "Festival"
	CategoryBengali  = "Bengali"
	CategorySpecial  = "Special" // Default category
)

// Categories lists every valid sweet category
var Categories = []string{CategoryMilk, CategoryDry, CategoryFestival, CategoryBengali, CategorySpecial}

// Sweet Model
type Sweet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                // Primary key
	Name        string    `gorm:"not null" json:"name"`                // Sweet name, min 2 characters
	Category    string    `gorm:"default:Special" json:"category"`     // One of Categories
	Price       float64   `gorm:"not null" json:"price"`               // Unit price, at least 1
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`  // Stock on hand, never negative
	Description string    `json:"description"`                         // Optional, up to 300 characters
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`     // Creation timestamp
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`     // Last update timestamp
}

// ValidCategory reports whether c is one of the known categories
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks the sweet's field constraints before persistence.
// It returns the list of violated constraints; an empty list means the
// sweet is valid.
func (s *Sweet) Validate() []string {
	var errs []string
	// Name must be at least 2 characters
	if len(s.Name) < 2 {
		errs = append(errs, "name must be at least 2 characters long")
	}
	// Empty category falls back to the default
	if s.Category == "" {
		s.Category = CategorySpecial
	}
	// Category must be one of the known values
	if !ValidCategory(s.Category) {
		errs = append(errs, fmt.Sprintf("category must be one of %v", Categories))
	}
	// Price must be at least 1
	if s.Price < 1 {
		errs = append(errs, "price must be at least 1")
	}
	// Quantity cannot be negative
	if s.Quantity < 0 {
		errs = append(errs, "quantity cannot be negative")
	}
	// Description is capped at 300 characters
	if len(s.Description) > 300 {
		errs = append(errs, "description must be under 300 characters")
	}
	return errs
}
