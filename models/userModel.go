package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

type Profile struct {
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Campus      string `json:"campus,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

type User struct {
	gorm.Model
	Email        string  `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"not null"`
	Role         string  `json:"role" gorm:"size:16;default:customer"`
	VendorID     *uint   `json:"vendorId,omitempty" gorm:"index"`
	Profile      Profile `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
}

// AccountSummary is the public view of a user returned by the auth endpoints.
type AccountSummary struct {
	ID       uint     `json:"id"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	VendorID *uint    `json:"vendorId,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
}

func (u User) Summary() AccountSummary {
	return AccountSummary{ID: u.ID, Email: u.Email, Role: u.Role, VendorID: u.VendorID}
}

func (u User) SummaryWithProfile() AccountSummary {
	s := u.Summary()
	profile := u.Profile
	s.Profile = &profile
	return s
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
