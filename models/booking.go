package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusRequested  BookingStatus = "REQUESTED"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// AllStatuses lists every known status in lifecycle order.
var AllStatuses = []BookingStatus{
	StatusRequested,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses are the statuses that occupy a provider's slot.
var ActiveStatuses = []BookingStatus{StatusRequested, StatusConfirmed, StatusInProgress}

// IsValid reports whether s is a known status.
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsActive reports whether a booking in this status blocks its slot.
func (s BookingStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave this status.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a raw string into a BookingStatus.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %q", raw)
	}
	return status, nil
}

// TimeOfDayLayout is the stored form of Booking.ScheduledTime.
const TimeOfDayLayout = "15:04"

var timeOfDayLayouts = []string{TimeOfDayLayout, "3:04 PM", "3:04PM", "15:04:05"}

// NormalizeTimeOfDay reads a 24-hour or 12-hour clock time such as "14:30"
// or "2:30 pm" and returns it as HH:MM, so equal instants share a slot key.
func NormalizeTimeOfDay(raw string) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(TimeOfDayLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time of day: %q", raw)
}

// StatusChange is one entry of a booking's audit trail.
type StatusChange struct {
	From      BookingStatus `bson:"from" json:"from"`
	To        BookingStatus `bson:"to" json:"to"`
	ActorID   string        `bson:"actorId" json:"actorId"`
	ActorRole Role          `bson:"actorRole" json:"actorRole"`
	Override  bool          `bson:"override,omitempty" json:"override,omitempty"` // admin move outside the edge table
	At        time.Time     `bson:"at" json:"at"`
}

// Booking is a customer's request for a provider's service at a given slot.
type Booking struct {
	ID            string         `bson:"id" json:"id"`
	Status        BookingStatus  `bson:"status" json:"status"`
	CustomerID    string         `bson:"customerId" json:"customerId"`
	ProviderID    string         `bson:"providerId" json:"providerId"`
	ServiceID     string         `bson:"serviceId" json:"serviceId"`
	ScheduledDate string         `bson:"scheduledDate" json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string         `bson:"scheduledTime" json:"scheduledTime"` // HH:MM, 24-hour clock
	ScheduledAt   *time.Time     `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	Address       string         `bson:"address" json:"address"`
	Notes         string         `bson:"notes" json:"notes"`
	TotalPrice    float64        `bson:"totalPrice" json:"totalPrice"` // price snapshot taken at creation
	ReviewID      string         `bson:"reviewId,omitempty" json:"reviewId,omitempty"`
	SlotActive    bool           `bson:"slotActive" json:"-"`
	Version       int64          `bson:"version" json:"-"`
	StatusHistory []StatusChange `bson:"statusHistory,omitempty" json:"statusHistory,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`

	// Populated on read, never persisted.
	Customer *UserSummary `bson:"-" json:"customer,omitempty"`
	Provider *UserSummary `bson:"-" json:"provider,omitempty"`
	Service  *Service     `bson:"-" json:"service,omitempty"`
	Review   *Review      `bson:"-" json:"review,omitempty"`
}

// HasParty reports whether userID is the booking's customer or provider.
func (b *Booking) HasParty(userID string) bool {
	return userID != "" && (b.CustomerID == userID || b.ProviderID == userID)
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	CustomerID string
	ProviderID string
	Status     BookingStatus
	Page       PageRequest
}
