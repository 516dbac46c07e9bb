package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated staff member for one request.
type Principal struct {
	ID          primitive.ObjectID `json:"id"`
	Email       string             `json:"email"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Role        string             `json:"role"`
	Department  string             `json:"department"`
	Permissions []string           `json:"permissions"`
	TokenID     string             `json:"-"`
	ExpiresAt   time.Time          `json:"-"`
}

// NewPrincipal builds a principal from a staff user.
func NewPrincipal(u *User) *Principal {
	dept := u.Profile.Department
	if dept == "" {
		dept = DefaultDepartment
	}
	perms := append([]string(nil), u.Profile.Permissions...)
	if perms == nil {
		perms = []string{}
	}
	return &Principal{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		Department:  dept,
		Permissions: perms,
	}
}
