package booking

import (
	"karigar/utils"
)

const (
	msgBookingNotFound   = "Booking not found"
	msgSlotUnavailable   = "The provider is not available at this time. Please choose a different slot."
	msgConcurrentUpdate  = "Booking was modified by another request; reload and retry"
	msgServiceNotFound   = "Service not found or inactive"
	msgRequiredFields    = "Service, scheduled date, scheduled time, and address are required"
	msgSelfBooking       = "You cannot book your own service"
	msgCustomersOnly     = "Only customers can create bookings"
	msgAdminsOnlyDelete  = "Only admins can delete bookings"
	msgAccessDenied      = "Access denied"
	msgNotAuthenticated  = "Unauthorized"
	msgInvalidDate       = "Scheduled date must be a valid date (YYYY-MM-DD)"
	msgInvalidTime       = "Scheduled time must be a clock time such as 14:30 or 2:30 PM"
	msgInvalidSchedule   = "scheduledAt must be an ISO-8601 date-time"
	msgEmptyStatus       = "Status cannot be empty"
	msgInvalidStatusList = "Invalid status filter"
)

// decisionError turns a denied policy decision into the caller-facing error.
func decisionError(d Decision) error {
	switch d.Reason {
	case ReasonAccessDenied, ReasonRoleNotAuthorized:
		return utils.Forbidden(d.Message)
	case ReasonInvalidStatusForRole, ReasonInvalidTransition:
		return utils.InvalidTransition(d.Message)
	case ReasonUnknownStatus:
		return utils.Validation(d.Message)
	default:
		return utils.Forbidden(msgAccessDenied)
	}
}
