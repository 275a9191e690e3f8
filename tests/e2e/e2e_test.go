package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"staybook/internal/database"
	"staybook/internal/middleware"
	"staybook/internal/modules/auth"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/favorite"
	"staybook/internal/modules/property"
	jwtsvc "staybook/internal/pkg/jwt"
	"staybook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour, 24*time.Hour)

	authH := auth.NewHandler(auth.NewService(userRepo, jwt))
	propertyH := property.NewHandler(property.NewService(propertyRepo))
	bookingH := booking.NewHandler(booking.NewService(bookingRepo, nil, nil))
	favoriteH := favorite.NewHandler(favorite.NewService(favoriteRepo, propertyRepo))

	r := gin.New()
	api := r.Group("/api/v1")
	authH.RegisterRoutes(api)
	propertyH.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwt))
	propertyH.RegisterRoutes(protected)
	bookingH.RegisterRoutes(protected)
	favoriteH.RegisterRoutes(protected)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp TestResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func register(t *testing.T, r *gin.Engine, role, email string) {
	t.Helper()
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/auth/register/"+role, "", gin.H{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := resp.Data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createProperty(t *testing.T, r *gin.Engine, hostToken string) int64 {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/properties", hostToken, gin.H{
		"title":   "Loft near the park",
		"address": "12 Abay Ave",
		"city":    "Almaty",
		"beds":    4,
		"price":   100,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	prop := resp.Data["property"].(map[string]interface{})
	return int64(prop["id"].(float64))
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestBookingFlow(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "host", "host@example.com")
	register(t, r, "customer", "guest@example.com")
	hostToken := login(t, r, "host@example.com")
	guestToken := login(t, r, "guest@example.com")

	propID := createProperty(t, r, hostToken)

	// customer books four nights
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(10),
		"check_out":   futureDate(14),
		"guests":      2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingData := resp.Data["booking"].(map[string]interface{})
	bookingID := int64(bookingData["id"].(float64))
	assert.Equal(t, "confirmed", bookingData["status"])
	assert.Equal(t, 800.0, bookingData["total_price"])

	// malformed body reports field-level details
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": propID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)

	// overlapping request loses
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(12),
		"check_out":   futureDate(16),
		"guests":      1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)

	// back-to-back stay is fine
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(14),
		"check_out":   futureDate(16),
		"guests":      1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// cancel frees the range for someone else
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", bookingID), guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	register(t, r, "customer", "other@example.com")
	otherToken := login(t, r, "other@example.com")
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/bookings", otherToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(10),
		"check_out":   futureDate(14),
		"guests":      2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// guest sees own bookings
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/bookings", guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, resp.Data["total"])
}

func TestBookingAccessControl(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "host", "host@example.com")
	register(t, r, "customer", "guest@example.com")
	register(t, r, "customer", "stranger@example.com")
	hostToken := login(t, r, "host@example.com")
	guestToken := login(t, r, "guest@example.com")
	strangerToken := login(t, r, "stranger@example.com")

	propID := createProperty(t, r, hostToken)

	// hosts cannot book
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/bookings", hostToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(10),
		"check_out":   futureDate(12),
		"guests":      1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	// customers cannot list properties
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/properties", guestToken, gin.H{
		"title":   "Fake listing",
		"address": "1 Main St",
		"city":    "Astana",
		"beds":    1,
		"price":   50,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// a stranger cannot read someone else's booking
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(10),
		"check_out":   futureDate(12),
		"guests":      1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(resp.Data["booking"].(map[string]interface{})["id"].(float64))

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), hostToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// anonymous requests stay out
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPropertyLifecycle(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "host", "host@example.com")
	register(t, r, "host", "rival@example.com")
	hostToken := login(t, r, "host@example.com")
	rivalToken := login(t, r, "rival@example.com")

	propID := createProperty(t, r, hostToken)

	// public listing needs no token
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/properties?city=almaty", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp.Data["total"])

	// only the owner may update
	w, _ = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/properties/%d", propID), rivalToken, gin.H{"price": 200.0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/properties/%d", propID), hostToken, gin.H{"price": 200.0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200.0, resp.Data["property"].(map[string]interface{})["price"])

	// archived listings stop admitting bookings
	w, _ = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/properties/%d", propID), hostToken, gin.H{"status": "archived"})
	require.Equal(t, http.StatusOK, w.Code)

	register(t, r, "customer", "guest@example.com")
	guestToken := login(t, r, "guest@example.com")
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": propID,
		"check_in":    futureDate(10),
		"check_out":   futureDate(12),
		"guests":      1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PROPERTY_NOT_BOOKABLE", resp.Error.Code)

	// delete
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/properties/%d", propID), hostToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/properties/%d", propID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesFlow(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "host", "host@example.com")
	register(t, r, "customer", "guest@example.com")
	hostToken := login(t, r, "host@example.com")
	guestToken := login(t, r, "guest@example.com")

	propID := createProperty(t, r, hostToken)

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/favorites/%d", propID), guestToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/favorites/%d", propID), guestToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_FAVORITE", resp.Error.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/favorites", guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp.Data["total"])

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", propID), guestToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/favorites/999", guestToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "customer", "guest@example.com")

	// duplicate email rejected
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/register/customer", "", gin.H{
		"first_name": "Test",
		"last_name":  "User",
		"email":      "guest@example.com",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)

	// admin cannot self-register
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/register/admin", "", gin.H{
		"first_name": "Evil",
		"last_name":  "Admin",
		"email":      "evil@example.com",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// wrong password
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "guest@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// refresh rotates the pair
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "guest@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	refresh := resp.Data["refresh_token"].(string)

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.Data["access_token"])
}
