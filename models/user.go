package models

import (
	"strings"
	"time"
)

// Role identifies what an authenticated user may do.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleProvider || r == RoleAdmin
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
	Name string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// User is a marketplace account: customer, provider or admin.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	City      string    `bson:"city,omitempty" json:"city,omitempty"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Role      Role      `bson:"role" json:"role"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Summary returns the public view of the user embedded in other payloads.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		City:    u.City,
		Image:   u.Image,
	}
}

// UserSummary is the subset of a user shown inside bookings and reviews.
type UserSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Image   string `json:"image,omitempty"`
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role Role
	// OnlyActive hides deactivated accounts.
	OnlyActive bool
	City       string
	// Search matches the name, email or bio.
	Search string
	Page   PageRequest
}

// Matches applies the filter in memory.
func (f UserFilter) Matches(u *User) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.OnlyActive && !u.IsActive {
		return false
	}
	if f.City != "" && !containsFold(u.City, f.City) {
		return false
	}
	if f.Search != "" {
		return containsFold(u.Name, f.Search) ||
			containsFold(u.Email, f.Search) ||
			containsFold(u.Bio, f.Search)
	}
	return true
}

// ParseRole reads a role name case-insensitively.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	return r, r.IsValid()
}
