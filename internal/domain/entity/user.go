package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account in the system
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:255;unique;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	Role       string         `gorm:"size:50;default:'user'" json:"role"`
	Provider   string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID *string        `gorm:"size:255" json:"-"`
	Photo      *string        `gorm:"size:255" json:"photo,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
