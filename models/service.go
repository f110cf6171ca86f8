package models

import (
	"strings"
	"time"
)

// PriceType describes how a service is billed.
type PriceType string

const (
	PriceFixed  PriceType = "FIXED"
	PriceHourly PriceType = "HOURLY"
	PriceSqft   PriceType = "SQFT"
)

// IsValid reports whether p is a known price type.
func (p PriceType) IsValid() bool {
	return p == PriceFixed || p == PriceHourly || p == PriceSqft
}

// Service is a provider's listing that customers book.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Price       float64   `bson:"price" json:"price"`
	PriceType   PriceType `bson:"priceType" json:"priceType"`
	Location    string    `bson:"location" json:"location"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`

	Provider *UserSummary `bson:"-" json:"provider,omitempty"`
}

// ServiceFilter narrows service listings.
type ServiceFilter struct {
	Category   string
	Location   string
	Search     string
	ProviderID string
	// OnlyActive hides inactive listings. Providers browsing their own
	// listings see everything.
	OnlyActive bool
	Page       PageRequest
}

// Matches applies the filter in memory.
func (f ServiceFilter) Matches(s *Service) bool {
	if f.OnlyActive && !s.IsActive {
		return false
	}
	if f.Category != "" && f.Category != "ALL" && s.Category != f.Category {
		return false
	}
	if f.ProviderID != "" && s.ProviderID != f.ProviderID {
		return false
	}
	if f.Location != "" && !containsFold(s.Location, f.Location) {
		return false
	}
	if f.Search != "" {
		return containsFold(s.Title, f.Search) ||
			containsFold(s.Description, f.Search) ||
			containsFold(s.Category, f.Search) ||
			containsFold(s.Location, f.Search)
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
