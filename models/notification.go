package models

import "time"

// NotificationType groups notifications by the event that produced them.
type NotificationType string

const (
	NotificationBooking NotificationType = "booking"
	NotificationReview  NotificationType = "review"
	NotificationReport  NotificationType = "report"
)

// Notification is an in-app message for a single recipient.
type Notification struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"userId" json:"userId"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	Read      bool             `bson:"read" json:"read"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}
