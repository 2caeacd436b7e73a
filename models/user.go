package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role describes how a user participates in task assignment. It stays empty
// until the user picks one during first-login configuration.
const (
	RoleGivesOrders    = "gives_orders"
	RoleReceivesOrders = "receives_orders"
	RoleBoth           = "both"
)

// IsValidRole reports whether role is one of the configured role values.
func IsValidRole(role string) bool {
	return role == RoleGivesOrders || role == RoleReceivesOrders || role == RoleBoth
}

// NormalizeEmail lowercases and trims an email address. Emails are unique
// regardless of case, so every write path stores the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID  string             `bson:"googleId" json:"googleId"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Picture   string             `bson:"picture,omitempty" json:"picture,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GoogleClaims carries the verified fields of a Google identity assertion.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// UserSummary is the reduced profile embedded in team and listing responses.
type UserSummary struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Picture       string             `json:"picture,omitempty"`
	Role          string             `json:"role,omitempty"`
	IsCurrentUser bool               `json:"isCurrentUser,omitempty"`
}

// Summary projects the public profile fields of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
		Role:    u.Role,
	}
}
