package booking

import (
	"fmt"

	"karigar/models"
)

// transitions is the lifecycle edge table. Terminal statuses have no edges.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusRequested:  {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// providerStatuses are the values a provider may request.
var providerStatuses = []models.BookingStatus{
	models.StatusConfirmed,
	models.StatusInProgress,
	models.StatusCompleted,
	models.StatusCancelled,
}

// CanTransition reports whether to is an outgoing edge of from.
func CanTransition(from, to models.BookingStatus) bool {
	return contains(transitions[from], to)
}

// NextStatuses lists the edges leaving from.
func NextStatuses(from models.BookingStatus) []models.BookingStatus {
	return append([]models.BookingStatus(nil), transitions[from]...)
}

func contains(list []models.BookingStatus, s models.BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Reason explains a denied decision.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonAccessDenied         Reason = "access_denied"
	ReasonRoleNotAuthorized    Reason = "role_not_authorized"
	ReasonInvalidStatusForRole Reason = "invalid_status_for_role"
	ReasonInvalidTransition    Reason = "invalid_transition"
	ReasonUnknownStatus        Reason = "unknown_status"
)

// PolicyInput is everything the transition policy looks at. Requested is
// empty when the update does not touch the status.
type PolicyInput struct {
	Current    models.BookingStatus
	Requested  models.BookingStatus
	ActorID    string
	ActorRole  models.Role
	CustomerID string
	ProviderID string
}

// Decision is the outcome of Evaluate.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
	// Override marks an admin move that is not an edge of the table.
	Override bool
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason Reason, message string) Decision {
	return Decision{Reason: reason, Message: message}
}

// Evaluate decides whether the actor may apply the requested status change.
// It has no side effects.
func Evaluate(in PolicyInput) Decision {
	switch {
	case in.ActorRole == models.RoleAdmin:
		if in.Requested != "" && !in.Requested.IsValid() {
			return deny(ReasonUnknownStatus, fmt.Sprintf("Invalid status: %s", in.Requested))
		}
		d := allow()
		d.Override = in.Requested != "" && in.Requested != in.Current && !CanTransition(in.Current, in.Requested)
		return d
	case !in.ActorRole.IsValid():
		return deny(ReasonRoleNotAuthorized, "Your role is not allowed to update bookings")
	case in.ActorID != "" && in.ActorID == in.ProviderID:
		if in.Requested != "" && !contains(providerStatuses, in.Requested) {
			return deny(ReasonInvalidStatusForRole, "Invalid status update for provider")
		}
	case in.ActorID != "" && in.ActorID == in.CustomerID:
		if in.Requested != "" && in.Requested != models.StatusCancelled {
			return deny(ReasonInvalidStatusForRole, "Customers can only cancel bookings")
		}
	default:
		return deny(ReasonAccessDenied, "Access denied")
	}

	if in.Requested != "" && !CanTransition(in.Current, in.Requested) {
		return deny(ReasonInvalidTransition,
			fmt.Sprintf("Cannot change status from %s to %s", in.Current, in.Requested))
	}
	return allow()
}
