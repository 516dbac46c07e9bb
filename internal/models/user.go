package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleTourist      UserRole = "tourist"
	UserRoleHotelOwner   UserRole = "hotel_owner"
	UserRoleGuide        UserRole = "guide"
	UserRoleDriver       UserRole = "driver"
	UserRoleVehicleOwner UserRole = "vehicle_owner"
	UserRoleStaff        UserRole = "staff"
	UserRoleAdmin        UserRole = "admin"
	UserRoleSuperAdmin   UserRole = "super_admin"
	UserRoleManager      UserRole = "manager"
	UserRoleSupportStaff UserRole = "support_staff"
)

// ServiceProviderRoles are the roles that go through staff approval.
var ServiceProviderRoles = []UserRole{UserRoleGuide, UserRoleHotelOwner, UserRoleDriver}

func IsServiceProvider(role UserRole) bool {
	for _, r := range ServiceProviderRoles {
		if r == role {
			return true
		}
	}
	return false
}

const DefaultDepartment = "operations"

type User struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FirstName         string             `json:"firstName" bson:"firstName"`
	LastName          string             `json:"lastName" bson:"lastName"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"-" bson:"password,omitempty"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role              UserRole           `json:"role" bson:"role"`
	IsVerified        bool               `json:"isVerified" bson:"isVerified"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	Profile           UserProfile        `json:"profile" bson:"profile"`
	Preferences       map[string]any     `json:"preferences,omitempty" bson:"preferences,omitempty"`
	PasswordChangedAt *time.Time         `json:"-" bson:"passwordChangedAt,omitempty"`
	LastLogin         *time.Time         `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	UserVerification  `bson:",inline"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type UserProfile struct {
	StaffID      string   `json:"staffId,omitempty" bson:"staffId,omitempty"`
	Department   string   `json:"department,omitempty" bson:"department,omitempty"`
	Permissions  []string `json:"permissions,omitempty" bson:"permissions,omitempty"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	Bio          string   `json:"bio,omitempty" bson:"bio,omitempty"`
	PricePerDay  float64  `json:"pricePerDay,omitempty" bson:"pricePerDay,omitempty"`
	Rating       float64  `json:"rating,omitempty" bson:"rating,omitempty"`
	Experience   int      `json:"experience,omitempty" bson:"experience,omitempty"`
	Languages    []string `json:"languages,omitempty" bson:"languages,omitempty"`
	Specialties  []string `json:"specialties,omitempty" bson:"specialties,omitempty"`
	VehicleType  string   `json:"vehicleType,omitempty" bson:"vehicleType,omitempty"`
	LicenseNo    string   `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	BusinessName string   `json:"businessName,omitempty" bson:"businessName,omitempty"`
}

// UserVerification holds the approval audit trail kept on the user document.
type UserVerification struct {
	VerifiedAt             *time.Time          `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
	VerifiedBy             *primitive.ObjectID `json:"verifiedBy,omitempty" bson:"verifiedBy,omitempty"`
	VerificationNotes      string              `json:"verificationNotes,omitempty" bson:"verificationNotes,omitempty"`
	VerificationConditions []string            `json:"verificationConditions,omitempty" bson:"verificationConditions,omitempty"`
	RejectedAt             *time.Time          `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectedBy             *primitive.ObjectID `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	RejectionReason        string              `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	RejectionNotes         string              `json:"rejectionNotes,omitempty" bson:"rejectionNotes,omitempty"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ChangedPasswordAfter reports whether the password changed after a token
// issued at iat. Comparison is in whole seconds, matching JWT iat precision.
func (u *User) ChangedPasswordAfter(iat time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return iat.Unix() < u.PasswordChangedAt.Unix()
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
}
