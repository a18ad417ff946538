package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`              // Primary key
	Name     string `gorm:"not null" json:"name"`              // Display name
	Email    string `gorm:"uniqueIndex;not null" json:"email"` // Unique email, used as login key
	Password string `gorm:"not null" json:"-"`                 // Hashed password, never serialized
	IsAdmin  bool   `gorm:"default:false" json:"isAdmin"`      // Admin role flag
}

// PublicUser is the projection of a User returned by the API.
// The password hash and the admin flag are withheld.
type PublicUser struct {
	ID    uint   `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email
}

// Public returns the API-facing projection of the user
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
