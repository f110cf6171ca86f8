package models

import "time"

// Review is a customer's rating of a completed booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"requestId"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	ServiceID  string    `bson:"serviceId" json:"serviceId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`

	Customer *UserSummary `bson:"-" json:"customer,omitempty"`
	Provider *UserSummary `bson:"-" json:"provider,omitempty"`
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	ProviderID string
	CustomerID string
	Page       PageRequest
}

// RatingSummary aggregates ratings.
type RatingSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}
