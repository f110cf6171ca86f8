package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"karigar/config"
	"karigar/database/repository/memory"
	"karigar/handlers"
	"karigar/models"
	"karigar/services/admin"
	"karigar/services/booking"
	"karigar/services/listing"
	"karigar/services/notification"
	"karigar/services/provider"
	"karigar/services/report"
	"karigar/services/review"
	"karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func (a apiClient) call(token, method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a apiClient) decode(w *httptest.ResponseRecorder, dst any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func token(t *testing.T, id string, role models.Role, name string) string {
	t.Helper()
	s, err := utils.GenerateToken(id, role, name, time.Hour)
	require.NoError(t, err)
	return s
}

func newTestAPI(t *testing.T) apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "routes-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	ctx := context.Background()
	store := memory.NewStore()
	for _, u := range []*models.User{
		{ID: "cust-1", Name: "Asha", Role: models.RoleCustomer},
		{ID: "prov-1", Name: "Ravi Plumbing", Role: models.RoleProvider},
		{ID: "admin-1", Name: "Ops", Role: models.RoleAdmin},
	} {
		require.NoError(t, store.Users.Create(ctx, u))
	}

	notifications, err := notification.NewDefaultNotificationService(store.Notifications, store.Users, nil, nil)
	require.NoError(t, err)
	bookings, err := booking.NewDefaultBookingService(store, notifications, utils.NewLocalSlotLock(), nil)
	require.NoError(t, err)
	reviews, err := review.NewDefaultReviewService(store, notifications)
	require.NoError(t, err)
	listings, err := listing.NewDefaultListingService(store)
	require.NoError(t, err)
	admins, err := admin.NewDefaultAdminService(store)
	require.NoError(t, err)
	reports, err := report.NewDefaultReportService(store, notifications)
	require.NoError(t, err)
	providers, err := provider.NewDefaultProviderService(store)
	require.NoError(t, err)

	bh := handlers.NewBookingHandler(bookings)
	sh := handlers.NewServiceHandler(listings)
	rh := handlers.NewReviewHandler(reviews)
	nh := handlers.NewNotificationHandler(notifications)
	uh := handlers.NewUserHandler(user.NewDefaultUserService(store.Users))
	ah := handlers.NewAdminHandler(admins)
	rp := handlers.NewReportHandler(reports)
	ph := handlers.NewProviderHandler(providers)

	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, &handlers.HandlerBundle{
		ListServicesHandler:      sh.ListServicesHandler,
		GetServiceHandler:        sh.GetServiceHandler,
		CreateServiceHandler:     sh.CreateServiceHandler,
		UpdateServiceHandler:     sh.UpdateServiceHandler,
		DeleteServiceHandler:     sh.DeleteServiceHandler,
		ListBookingsHandler:      bh.ListBookingsHandler,
		CreateBookingHandler:     bh.CreateBookingHandler,
		GetBookingHandler:        bh.GetBookingHandler,
		UpdateBookingHandler:     bh.UpdateBookingHandler,
		DeleteBookingHandler:     bh.DeleteBookingHandler,
		ListReviewsHandler:       rh.ListReviewsHandler,
		CreateReviewHandler:      rh.CreateReviewHandler,
		DeleteReviewHandler:      rh.DeleteReviewHandler,
		ListReportsHandler:       rp.ListReportsHandler,
		CreateReportHandler:      rp.CreateReportHandler,
		GetReportHandler:         rp.GetReportHandler,
		UpdateReportHandler:      rp.UpdateReportHandler,
		DeleteReportHandler:      rp.DeleteReportHandler,
		ListProvidersHandler:     ph.ListProvidersHandler,
		GetProviderHandler:       ph.GetProviderHandler,
		ListNotificationsHandler: nh.ListNotificationsHandler,
		MarkNotificationHandler:  nh.MarkNotificationHandler,
		GetMeHandler:             uh.GetMeHandler,
		UpdateFCMTokenHandler:    uh.UpdateFCMTokenHandler,
		AdminStatsHandler:        ah.StatsHandler,
		AdminBookingsHandler:     bh.AdminBookingsHandler,
		GetAllUsersHandler:       ah.GetAllUsersHandler,
		GetAllProvidersHandler:   ah.GetAllProvidersHandler,
		UpdateUserHandler:        ah.UpdateUserHandler,
		DeleteUserHandler:        ah.DeleteUserHandler,
		HealthHandler:            handlers.HealthHandler,
	})
	return apiClient{t: t, router: r}
}

type inbox struct {
	Notifications []models.Notification `json:"notifications"`
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	customer := token(t, "cust-1", models.RoleCustomer, "Asha")
	provider := token(t, "prov-1", models.RoleProvider, "Ravi Plumbing")
	adminToken := token(t, "admin-1", models.RoleAdmin, "Ops")

	w := api.call(provider, http.MethodPost, "/api/services", map[string]any{
		"title": "Pipe Repair", "category": "PLUMBING", "price": 1500, "location": "Indiranagar",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var service models.Service
	api.decode(w, &service)

	w = api.call(customer, http.MethodPost, "/api/bookings", map[string]any{
		"serviceId": service.ID, "scheduledDate": "2024-06-01", "scheduledTime": "10:00", "address": "12 MG Road",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b models.Booking
	api.decode(w, &b)
	assert.Equal(t, models.StatusRequested, b.Status)
	assert.Equal(t, 1500.0, b.TotalPrice)

	for _, status := range []string{"CONFIRMED", "IN_PROGRESS", "COMPLETED"} {
		w = api.call(provider, http.MethodPut, "/api/bookings/"+b.ID, map[string]any{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = api.call(customer, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customerInbox inbox
	api.decode(w, &customerInbox)
	var titles []string
	for _, n := range customerInbox.Notifications {
		titles = append(titles, n.Title)
	}
	assert.ElementsMatch(t, []string{"Booking Confirmed", "Service Started", "Service Completed"}, titles)

	w = api.call(customer, http.MethodPost, "/api/reviews", map[string]any{"requestId": b.ID, "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.call(customer, http.MethodPost, "/api/reviews", map[string]any{"requestId": b.ID, "rating": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.call(provider, http.MethodGet, "/api/notifications", nil)
	var providerInbox inbox
	api.decode(w, &providerInbox)
	titles = nil
	for _, n := range providerInbox.Notifications {
		titles = append(titles, n.Title)
	}
	assert.ElementsMatch(t, []string{"New Booking Request", "New Review"}, titles)

	w = api.call(customer, http.MethodGet, "/api/bookings/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.decode(w, &b)
	assert.NotEmpty(t, b.ReviewID)
	require.NotNil(t, b.Review)
	assert.Equal(t, 5, b.Review.Rating)

	w = api.call(adminToken, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.AdminStats
	api.decode(w, &stats)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.BookingsByStatus[models.StatusCompleted])
	assert.Equal(t, int64(1), stats.TotalReviews)
	assert.Equal(t, 5.0, stats.AverageRating)

	assert.Equal(t, http.StatusForbidden, api.call(customer, http.MethodGet, "/api/admin/stats", nil).Code)
}

func TestCustomerCancelOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	customer := token(t, "cust-1", models.RoleCustomer, "Asha")
	provider := token(t, "prov-1", models.RoleProvider, "Ravi Plumbing")

	w := api.call(provider, http.MethodPost, "/api/services", map[string]any{
		"title": "Fan Install", "category": "ELECTRICAL", "price": 700, "location": "Koramangala",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var service models.Service
	api.decode(w, &service)

	w = api.call(customer, http.MethodPost, "/api/bookings", map[string]any{
		"serviceId": service.ID, "scheduledDate": "2024-06-02", "scheduledTime": "09:00", "address": "4 Church Street",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var b models.Booking
	api.decode(w, &b)

	w = api.call(customer, http.MethodPut, "/api/bookings/"+b.ID, map[string]any{"status": "CANCELLED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.call(provider, http.MethodPut, "/api/bookings/"+b.ID, map[string]any{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"invalid_transition"`)

	w = api.call(provider, http.MethodGet, "/api/notifications", nil)
	var providerInbox inbox
	api.decode(w, &providerInbox)
	titles := make([]string, 0, len(providerInbox.Notifications))
	for _, n := range providerInbox.Notifications {
		titles = append(titles, n.Title)
	}
	assert.ElementsMatch(t, []string{"New Booking Request", "Booking Cancelled"}, titles)

	assert.Equal(t, http.StatusUnauthorized, api.call("", http.MethodGet, "/api/bookings", nil).Code)
	assert.Equal(t, http.StatusOK, api.call("", http.MethodGet, "/api/services?category=ELECTRICAL", nil).Code)
}

func inboxTitles(api apiClient, bearer string) []string {
	w := api.call(bearer, http.MethodGet, "/api/notifications", nil)
	require.Equal(api.t, http.StatusOK, w.Code)
	var box inbox
	api.decode(w, &box)
	titles := make([]string, 0, len(box.Notifications))
	for _, n := range box.Notifications {
		titles = append(titles, n.Title)
	}
	return titles
}

func TestReportsOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	customer := token(t, "cust-1", models.RoleCustomer, "Asha")
	provider := token(t, "prov-1", models.RoleProvider, "Ravi Plumbing")
	adminToken := token(t, "admin-1", models.RoleAdmin, "Ops")

	w := api.call(customer, http.MethodPost, "/api/reports", map[string]any{
		"type": "USER", "reason": "Rude", "targetUserId": "cust-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You cannot report yourself")

	w = api.call(customer, http.MethodPost, "/api/reports", map[string]any{
		"type": "USER", "reason": "No show", "targetUserId": "prov-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Report
	api.decode(w, &created)
	assert.Equal(t, models.ReportPending, created.Status)
	require.NotNil(t, created.TargetUser)
	assert.Equal(t, "Ravi Plumbing", created.TargetUser.Name)

	assert.Equal(t, []string{"New Report Submitted"}, inboxTitles(api, adminToken))

	assert.Equal(t, http.StatusForbidden, api.call(provider, http.MethodPut, "/api/reports/"+created.ID, map[string]any{"status": "RESOLVED"}).Code)
	assert.Equal(t, http.StatusForbidden, api.call(provider, http.MethodGet, "/api/reports/"+created.ID, nil).Code)

	var listed struct {
		Reports []models.Report `json:"reports"`
	}
	w = api.call(provider, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.decode(w, &listed)
	assert.Empty(t, listed.Reports)

	w = api.call(adminToken, http.MethodPut, "/api/reports/"+created.ID, map[string]any{
		"status": "RESOLVED", "resolution": "Provider warned",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"Report Status Updated"}, inboxTitles(api, customer))

	w = api.call(adminToken, http.MethodGet, "/api/admin/stats", nil)
	var stats models.AdminStats
	api.decode(w, &stats)
	assert.Equal(t, int64(1), stats.TotalReports)
	assert.Equal(t, int64(0), stats.PendingReports)

	assert.Equal(t, http.StatusOK, api.call(adminToken, http.MethodDelete, "/api/reports/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.call(customer, http.MethodGet, "/api/reports/"+created.ID, nil).Code)
}

func TestProviderDirectoryAndUserAdminOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	customer := token(t, "cust-1", models.RoleCustomer, "Asha")
	provider := token(t, "prov-1", models.RoleProvider, "Ravi Plumbing")
	adminToken := token(t, "admin-1", models.RoleAdmin, "Ops")

	w := api.call(provider, http.MethodPost, "/api/services", map[string]any{
		"title": "Pipe Repair", "category": "PLUMBING", "price": 1500, "location": "Indiranagar",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var directory struct {
		Providers  []models.ProviderProfile `json:"providers"`
		Pagination models.Pagination        `json:"pagination"`
	}
	w = api.call("", http.MethodGet, "/api/providers?search=ravi", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	api.decode(w, &directory)
	require.Len(t, directory.Providers, 1)
	assert.Equal(t, "prov-1", directory.Providers[0].ID)
	assert.Len(t, directory.Providers[0].Services, 1)
	assert.Equal(t, []string{"PLUMBING"}, directory.Providers[0].Categories)
	assert.Equal(t, 12, directory.Pagination.Limit)

	assert.Equal(t, http.StatusNotFound, api.call("", http.MethodGet, "/api/providers/cust-1", nil).Code)

	var users struct {
		Users []models.User `json:"users"`
	}
	w = api.call(adminToken, http.MethodGet, "/api/admin/users?role=customer", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	api.decode(w, &users)
	require.Len(t, users.Users, 1)
	assert.Equal(t, "cust-1", users.Users[0].ID)
	assert.Equal(t, http.StatusBadRequest, api.call(adminToken, http.MethodGet, "/api/admin/users?role=OWNER", nil).Code)
	assert.Equal(t, http.StatusForbidden, api.call(customer, http.MethodGet, "/api/admin/users", nil).Code)

	w = api.call(adminToken, http.MethodPut, "/api/admin/users/prov-1", map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.User
	api.decode(w, &updated)
	assert.False(t, updated.IsActive)
	assert.Equal(t, models.RoleProvider, updated.Role)

	w = api.call("", http.MethodGet, "/api/providers", nil)
	api.decode(w, &directory)
	assert.Empty(t, directory.Providers)
	assert.Equal(t, http.StatusNotFound, api.call("", http.MethodGet, "/api/providers/prov-1", nil).Code)

	w = api.call(adminToken, http.MethodGet, "/api/admin/providers", nil)
	api.decode(w, &users)
	require.Len(t, users.Users, 1)
	assert.False(t, users.Users[0].IsActive)

	assert.Equal(t, http.StatusBadRequest, api.call(adminToken, http.MethodDelete, "/api/admin/users/admin-1", nil).Code)
	assert.Equal(t, http.StatusOK, api.call(adminToken, http.MethodDelete, "/api/admin/users/cust-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.call(adminToken, http.MethodDelete, "/api/admin/users/cust-1", nil).Code)
}
