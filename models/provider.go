package models

import (
	"math"
	"time"
)

// ProviderProfile is a provider's public directory entry: the account, the
// active services and the rating received across all reviews.
type ProviderProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Image       string    `json:"image,omitempty"`
	City        string    `json:"city,omitempty"`
	Address     string    `json:"address,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Services    []Service `json:"services"`
	Categories  []string  `json:"categories"`
	AvgRating   float64   `json:"avgRating"`
	ReviewCount int64     `json:"reviewCount"`
	// Reviews holds the latest reviews on the single-provider view only.
	Reviews []Review `json:"reviews,omitempty"`
}

// NewProviderProfile builds the directory entry of u.
func NewProviderProfile(u *User, services []Service, rating RatingSummary) ProviderProfile {
	if services == nil {
		services = []Service{}
	}
	categories := []string{}
	seen := make(map[string]bool)
	for _, s := range services {
		if s.Category != "" && !seen[s.Category] {
			seen[s.Category] = true
			categories = append(categories, s.Category)
		}
	}
	return ProviderProfile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Image:       u.Image,
		City:        u.City,
		Address:     u.Address,
		Bio:         u.Bio,
		CreatedAt:   u.CreatedAt,
		Services:    services,
		Categories:  categories,
		AvgRating:   math.Round(rating.Average*10) / 10,
		ReviewCount: rating.Count,
	}
}

// ProviderFilter narrows the provider directory.
type ProviderFilter struct {
	City   string
	Search string
	Page   PageRequest
}
