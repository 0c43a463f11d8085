package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleRider = "rider"
)

// User represents an account, created on first login
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"` // "user", "admin" or "rider"
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogIn time.Time          `bson:"last_log_in" json:"last_log_in"`
}
