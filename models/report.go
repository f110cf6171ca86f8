package models

import "time"

// ReportType names what a report is about.
type ReportType string

const (
	ReportUser    ReportType = "USER"
	ReportService ReportType = "SERVICE"
	ReportReview  ReportType = "REVIEW"
	ReportBooking ReportType = "BOOKING"
)

// IsValid reports whether t is a known report type.
func (t ReportType) IsValid() bool {
	switch t {
	case ReportUser, ReportService, ReportReview, ReportBooking:
		return true
	}
	return false
}

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	ReportPending       ReportStatus = "PENDING"
	ReportInvestigating ReportStatus = "INVESTIGATING"
	ReportResolved      ReportStatus = "RESOLVED"
	ReportDismissed     ReportStatus = "DISMISSED"
)

// IsValid reports whether s is a known report status.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportPending, ReportInvestigating, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Report is a user's complaint about another user, a service, a review or
// a booking. Any of the target ids may be set.
type Report struct {
	ID              string       `bson:"id" json:"id"`
	ReporterID      string       `bson:"reporterId" json:"reporterId"`
	Type            ReportType   `bson:"type" json:"type"`
	Reason          string       `bson:"reason" json:"reason"`
	Description     string       `bson:"description,omitempty" json:"description,omitempty"`
	TargetUserID    string       `bson:"targetUserId,omitempty" json:"targetUserId,omitempty"`
	TargetServiceID string       `bson:"targetServiceId,omitempty" json:"targetServiceId,omitempty"`
	TargetReviewID  string       `bson:"targetReviewId,omitempty" json:"targetReviewId,omitempty"`
	TargetBookingID string       `bson:"targetBookingId,omitempty" json:"targetBookingId,omitempty"`
	Status          ReportStatus `bson:"status" json:"status"`
	Resolution      string       `bson:"resolution,omitempty" json:"resolution,omitempty"`
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt" json:"updatedAt"`

	Reporter   *UserSummary `bson:"-" json:"reporter,omitempty"`
	TargetUser *UserSummary `bson:"-" json:"targetUser,omitempty"`
}

// HasTarget reports whether the report points at anything.
func (r *Report) HasTarget() bool {
	return r.TargetUserID != "" || r.TargetServiceID != "" ||
		r.TargetReviewID != "" || r.TargetBookingID != ""
}

// ReportFilter narrows report listings.
type ReportFilter struct {
	ReporterID string
	Status     ReportStatus
	Type       ReportType
	Page       PageRequest
}
