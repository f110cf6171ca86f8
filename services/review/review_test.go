package review

import (
	"context"
	"testing"

	"karigar/database/repository"
	"karigar/database/repository/memory"
	"karigar/models"
	"karigar/services/notification"
	"karigar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customer = models.Actor{ID: "cust-1", Role: models.RoleCustomer, Name: "Asha"}
	other    = models.Actor{ID: "cust-2", Role: models.RoleCustomer, Name: "Bilal"}
	provider = models.Actor{ID: "prov-1", Role: models.RoleProvider, Name: "Ravi Plumbing"}
	admin    = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
)

func newReviewService(t *testing.T) (*DefaultReviewService, *repository.Store, *memory.NotificationRepo) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for _, u := range []*models.User{
		{ID: "cust-1", Name: "Asha", Role: models.RoleCustomer},
		{ID: "cust-2", Name: "Bilal", Role: models.RoleCustomer},
		{ID: "prov-1", Name: "Ravi Plumbing", Role: models.RoleProvider},
	} {
		require.NoError(t, store.Users.Create(ctx, u))
	}

	notifications := store.Notifications.(*memory.NotificationRepo)
	notifier, err := notification.NewDefaultNotificationService(store.Notifications, store.Users, nil, nil)
	require.NoError(t, err)
	svc, err := NewDefaultReviewService(store, notifier)
	require.NoError(t, err)
	return svc, store, notifications
}

func seedBooking(t *testing.T, store *repository.Store, id string, status models.BookingStatus) {
	t.Helper()
	require.NoError(t, store.Bookings.Create(context.Background(), &models.Booking{
		ID:            id,
		Status:        status,
		CustomerID:    "cust-1",
		ProviderID:    "prov-1",
		ServiceID:     "svc-1",
		ScheduledDate: "2024-06-01",
		ScheduledTime: id,
		Address:       "12 MG Road",
		TotalPrice:    1500,
	}))
}

func rating(v float64) *float64 { return &v }

func TestCreateReviewAttachesToBooking(t *testing.T) {
	svc, store, notifications := newReviewService(t)
	ctx := context.Background()
	seedBooking(t, store, "b-1", models.StatusCompleted)

	review, err := svc.CreateReview(ctx, customer, CreateReviewInput{RequestID: "b-1", Rating: rating(4), Comment: " Tidy work "})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Tidy work", review.Comment)
	assert.Equal(t, "prov-1", review.ProviderID)
	require.NotNil(t, review.Customer)
	assert.Equal(t, "Asha", review.Customer.Name)

	booking, err := store.Bookings.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, review.ID, booking.ReviewID)

	sent := notifications.All()
	require.Len(t, sent, 1)
	assert.Equal(t, "prov-1", sent[0].UserID)
	assert.Equal(t, "New Review", sent[0].Title)
	assert.Equal(t, "Asha left a 4-star review for your service", sent[0].Message)
	assert.Equal(t, models.NotificationReview, sent[0].Type)

	_, err = svc.CreateReview(ctx, customer, CreateReviewInput{RequestID: "b-1", Rating: rating(5)})
	requireKind(t, err, utils.KindConflict)
	assert.Len(t, notifications.All(), 1)
}

func TestCreateReviewRejectsBadRatings(t *testing.T) {
	svc, store, _ := newReviewService(t)
	seedBooking(t, store, "b-1", models.StatusCompleted)

	for _, r := range []float64{0, 6, -1, 3.5, 4.999} {
		_, err := svc.CreateReview(context.Background(), customer, CreateReviewInput{RequestID: "b-1", Rating: rating(r)})
		requireKind(t, err, utils.KindValidation)
	}
	for _, r := range []float64{1, 5} {
		_, ok := validRating(r)
		assert.True(t, ok, "rating %v", r)
	}
}

func TestCreateReviewPreconditions(t *testing.T) {
	svc, store, notifications := newReviewService(t)
	seedBooking(t, store, "b-done", models.StatusCompleted)
	seedBooking(t, store, "b-open", models.StatusInProgress)
	seedBooking(t, store, "b-off", models.StatusCancelled)

	tests := []struct {
		name  string
		actor models.Actor
		input CreateReviewInput
		kind  utils.ErrorKind
	}{
		{"anonymous", models.Actor{}, CreateReviewInput{RequestID: "b-done", Rating: rating(5)}, utils.KindUnauthorized},
		{"provider", provider, CreateReviewInput{RequestID: "b-done", Rating: rating(5)}, utils.KindForbidden},
		{"no booking id", customer, CreateReviewInput{Rating: rating(5)}, utils.KindValidation},
		{"no rating", customer, CreateReviewInput{RequestID: "b-done"}, utils.KindValidation},
		{"unknown booking", customer, CreateReviewInput{RequestID: "nope", Rating: rating(5)}, utils.KindNotFound},
		{"someone else's booking", other, CreateReviewInput{RequestID: "b-done", Rating: rating(5)}, utils.KindForbidden},
		{"in progress", customer, CreateReviewInput{RequestID: "b-open", Rating: rating(5)}, utils.KindValidation},
		{"cancelled", customer, CreateReviewInput{RequestID: "b-off", Rating: rating(5)}, utils.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(context.Background(), tt.actor, tt.input)
			requireKind(t, err, tt.kind)
		})
	}
	assert.Empty(t, notifications.All())

	booking, err := store.Bookings.GetByID(context.Background(), "b-done")
	require.NoError(t, err)
	assert.Empty(t, booking.ReviewID)
}

func TestDeleteReviewDetaches(t *testing.T) {
	svc, store, _ := newReviewService(t)
	ctx := context.Background()
	seedBooking(t, store, "b-1", models.StatusCompleted)

	review, err := svc.CreateReview(ctx, customer, CreateReviewInput{RequestID: "b-1", Rating: rating(3)})
	require.NoError(t, err)

	requireKind(t, svc.DeleteReview(ctx, other, review.ID), utils.KindForbidden)
	require.NoError(t, svc.DeleteReview(ctx, customer, review.ID))
	requireKind(t, svc.DeleteReview(ctx, admin, review.ID), utils.KindNotFound)

	booking, err := store.Bookings.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Empty(t, booking.ReviewID)

	// Once detached the booking can be reviewed again.
	_, err = svc.CreateReview(ctx, customer, CreateReviewInput{RequestID: "b-1", Rating: rating(5)})
	require.NoError(t, err)
}

func TestListReviews(t *testing.T) {
	svc, store, _ := newReviewService(t)
	ctx := context.Background()
	seedBooking(t, store, "b-1", models.StatusCompleted)
	seedBooking(t, store, "b-2", models.StatusCompleted)
	for _, id := range []string{"b-1", "b-2"} {
		_, err := svc.CreateReview(ctx, customer, CreateReviewInput{RequestID: id, Rating: rating(5)})
		require.NoError(t, err)
	}

	reviews, page, err := svc.ListReviews(ctx, models.ReviewFilter{ProviderID: "prov-1", Page: models.PageRequest{Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.NotNil(t, reviews[0].Provider)
	assert.Equal(t, "Ravi Plumbing", reviews[0].Provider.Name)
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, utils.KindOf(err), err.Error())
}
