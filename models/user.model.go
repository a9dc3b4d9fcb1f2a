package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a shipping address
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipcode" json:"zipcode"`
	Country string `bson:"country" json:"country"`
}

// User represents a registered customer or admin
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string             `bson:"name" json:"name" validate:"required"`
	Email            string             `bson:"email" json:"email" validate:"required,email"`
	Password         string             `bson:"password,omitempty" json:"-" validate:"required,min=8"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	Role             string             `bson:"role" json:"role" validate:"omitempty,oneof=user admin"`
	ResetToken       string             `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry *time.Time         `bson:"reset_token_expiry,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// NormalizeEmail trims and lowercases an email so lookups and uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
