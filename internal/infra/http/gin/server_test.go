package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"

	authsvc "stayfinder/internal/app/services/auth"
	bookingsvc "stayfinder/internal/app/services/booking"
	listingsvc "stayfinder/internal/app/services/listings"
	domainlistings "stayfinder/internal/domain/listings"
	domainuser "stayfinder/internal/domain/user"
	"stayfinder/internal/infra/obs"
	"stayfinder/internal/infra/security"
	"stayfinder/internal/infra/storage/memory"
)

const testSecret = "test-secret"

type testEnv struct {
	router   *gin.Engine
	users    *memory.UserRepository
	listings *memory.ListingRepository
	tokens   security.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	listingRepo := memory.NewListingRepository()
	bookingRepo := memory.NewBookingRepository()
	tokens := security.TokenManager{Secret: testSecret, TTL: 2 * time.Hour}

	authService := &authsvc.Service{
		Users:     users,
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    tokens,
	}
	listingService := &listingsvc.Service{Listings: listingRepo}
	bookingService := &bookingsvc.Service{Bookings: bookingRepo, Listings: listingRepo}

	listingHandler := ListingHandler{Service: listingService}
	authMW := AuthMiddleware{Tokens: tokens, Users: users}
	router := NewRouter(obs.Middleware{}, obs.HealthHandlers{}, Handlers{
		Auth:        AuthHandler{Service: authService},
		Listing:     listingHandler,
		Booking:     BookingHandler{Service: bookingService},
		Admin:       AdminHandler{Users: users, Listing: listingHandler},
		RequireAuth: authMW.RequireAuth(),
	})
	return &testEnv{router: router, users: users, listings: listingRepo, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedListing(t *testing.T, id, address string, guests int) {
	t.Helper()
	listing, err := domainlistings.NewListing(domainlistings.CreateParams{
		ID:            domainlistings.ListingID(id),
		Title:         "Listing " + id,
		Address:       address,
		PricePerNight: 1000,
		Guests:        guests,
	})
	if err != nil {
		t.Fatalf("NewListing: %v", err)
	}
	if err := e.listings.Save(context.Background(), listing); err != nil {
		t.Fatalf("Save listing: %v", err)
	}
}

func (e *testEnv) seedUser(t *testing.T, id, username, email string, role domainuser.Role) string {
	t.Helper()
	user, err := domainuser.NewUser(domainuser.CreateParams{
		ID:           domainuser.ID(id),
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := e.users.Save(context.Background(), user); err != nil {
		t.Fatalf("Save user: %v", err)
	}
	token, err := e.tokens.Issue(id, string(role), time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users/signup", "", gin.H{
		"username": "alice", "email": "a@b.com", "password": "correcthorse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}

	dup := env.do(t, http.MethodPost, "/api/users/signup", "", gin.H{
		"username": "alice2", "email": "a@b.com", "password": "correcthorse",
	})
	if dup.Code != http.StatusConflict {
		t.Fatalf("duplicate email status = %d, want 409", dup.Code)
	}

	login := env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email": "a@b.com", "password": "correcthorse",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", login.Code, login.Body.String())
	}
	auth := decodeBody[map[string]any](t, login)
	token, _ := auth["token"].(string)
	if token == "" {
		t.Fatalf("login response missing token: %v", auth)
	}

	me := env.do(t, http.MethodGet, "/api/bookings/user", token, nil)
	if me.Code != http.StatusOK {
		t.Fatalf("authenticated request status = %d", me.Code)
	}
}

func TestSearchValidatesGuests(t *testing.T) {
	env := newTestEnv(t)
	for _, raw := range []string{"0", "-2", "abc"} {
		rec := env.do(t, http.MethodGet, "/api/listings/search?guests="+raw, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("guests=%q status = %d, want 400", raw, rec.Code)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	env := newTestEnv(t)
	env.seedListing(t, "l1", "Calangute, Goa", 2)
	env.seedListing(t, "l2", "Baner, Pune", 6)
	env.seedListing(t, "l3", "Anjuna, Goa", 5)

	rec := env.do(t, http.MethodGet, "/api/listings/search?location=goa&guests=4", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d", rec.Code)
	}
	items := decodeBody[[]map[string]any](t, rec)
	if len(items) != 1 {
		t.Fatalf("got %d results, want 1: %v", len(items), items)
	}
	if items[0]["id"] != "l3" {
		t.Fatalf("result id = %v, want l3", items[0]["id"])
	}

	all := env.do(t, http.MethodGet, "/api/listings/search", "", nil)
	if got := len(decodeBody[[]map[string]any](t, all)); got != 3 {
		t.Fatalf("unfiltered search returned %d, want 3", got)
	}
}

func TestAuthGateMessages(t *testing.T) {
	env := newTestEnv(t)

	missing := env.do(t, http.MethodGet, "/api/bookings/user", "", nil)
	if missing.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", missing.Code)
	}
	missingBody := decodeBody[map[string]string](t, missing)

	expiredToken, err := env.tokens.Issue("u1", "user", time.Now().Add(-3*time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	expired := env.do(t, http.MethodGet, "/api/bookings/user", expiredToken, nil)
	if expired.Code != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d, want 401", expired.Code)
	}
	expiredBody := decodeBody[map[string]string](t, expired)

	if missingBody["error"] == expiredBody["error"] {
		t.Fatalf("missing and expired tokens must be reported distinctly, both got %q", missingBody["error"])
	}

	garbage := env.do(t, http.MethodGet, "/api/bookings/user", "garbage", nil)
	if garbage.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", garbage.Code)
	}

	// Valid token for a user that no longer resolves.
	ghostToken, err := env.tokens.Issue("ghost", "user", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	ghost := env.do(t, http.MethodGet, "/api/bookings/user", ghostToken, nil)
	if ghost.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", ghost.Code)
	}
}

func TestAdminGate(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.seedUser(t, "u1", "alice", "a@b.com", domainuser.RoleUser)
	adminToken := env.seedUser(t, "u2", "root", "root@b.com", domainuser.RoleAdmin)

	denied := env.do(t, http.MethodGet, "/api/admin/users", userToken, nil)
	if denied.Code != http.StatusForbidden {
		t.Fatalf("user role status = %d, want 403", denied.Code)
	}

	allowed := env.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	if allowed.Code != http.StatusOK {
		t.Fatalf("admin role status = %d, want 200", allowed.Code)
	}
	profiles := decodeBody[[]map[string]any](t, allowed)
	if len(profiles) != 2 {
		t.Fatalf("got %d users, want 2", len(profiles))
	}
	for _, profile := range profiles {
		if _, leaked := profile["password"]; leaked {
			t.Fatalf("password leaked in admin user list: %v", profile)
		}
	}
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedListing(t, "l1", "Calangute, Goa", 4)
	ownerToken := env.seedUser(t, "u1", "alice", "a@b.com", domainuser.RoleUser)
	otherToken := env.seedUser(t, "u2", "bob", "b@b.com", domainuser.RoleUser)

	payload := gin.H{
		"listingId":      "l1",
		"checkIn":        "2026-04-01",
		"checkOut":       "2026-04-04",
		"checkInTime":    "14:00",
		"checkOutTime":   "11:00",
		"numberOfGuests": 2,
		"totalPrice":     3900,
	}
	created := env.do(t, http.MethodPost, "/api/bookings", ownerToken, payload)
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", created.Code, created.Body.String())
	}
	booking := decodeBody[map[string]any](t, created)
	bookingID, _ := booking["id"].(string)
	if bookingID == "" {
		t.Fatalf("create response missing id: %v", booking)
	}

	incomplete := gin.H{"listingId": "l1", "checkIn": "2026-04-01"}
	if rec := env.do(t, http.MethodPost, "/api/bookings", ownerToken, incomplete); rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete booking status = %d, want 400", rec.Code)
	}

	payload["listingId"] = "missing"
	if rec := env.do(t, http.MethodPost, "/api/bookings", ownerToken, payload); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown listing status = %d, want 404", rec.Code)
	}

	foreign := env.do(t, http.MethodDelete, "/api/bookings/"+bookingID, otherToken, nil)
	if foreign.Code != http.StatusForbidden {
		t.Fatalf("foreign cancel status = %d, want 403", foreign.Code)
	}

	owned := env.do(t, http.MethodDelete, "/api/bookings/"+bookingID, ownerToken, nil)
	if owned.Code != http.StatusOK {
		t.Fatalf("own cancel status = %d, body %s", owned.Code, owned.Body.String())
	}

	gone := env.do(t, http.MethodDelete, "/api/bookings/"+bookingID, ownerToken, nil)
	if gone.Code != http.StatusNotFound {
		t.Fatalf("repeat cancel status = %d, want 404", gone.Code)
	}
}

func TestListingQuoteEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedListing(t, "l1", "Calangute, Goa", 4)

	rec := env.do(t, http.MethodGet, "/api/listings/l1/quote?check_in=2026-04-01&check_out=2026-04-04", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote status = %d, body %s", rec.Code, rec.Body.String())
	}
	quote := decodeBody[map[string]float64](t, rec)
	for field, want := range map[string]float64{"nights": 3, "subtotal": 3000, "serviceFee": 360, "taxes": 540, "total": 3900} {
		if quote[field] != want {
			t.Fatalf("%s = %v, want %v", field, quote[field], want)
		}
	}

	unordered := env.do(t, http.MethodGet, "/api/listings/l1/quote?check_in=2026-04-04&check_out=2026-04-01", "", nil)
	if unordered.Code != http.StatusBadRequest {
		t.Fatalf("unordered range status = %d, want 400", unordered.Code)
	}

	missing := env.do(t, http.MethodGet, fmt.Sprintf("/api/listings/%s/quote?check_in=2026-04-01&check_out=2026-04-04", "nope"), "", nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("unknown listing quote status = %d, want 404", missing.Code)
	}
}

func TestCreateListingValidation(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/listings", "", gin.H{"description": "no title or price"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	ok := env.do(t, http.MethodPost, "/api/listings", "", gin.H{
		"title": "Beach hut", "pricePerNight": 1000, "address": "Goa", "guests": 2,
	})
	if ok.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", ok.Code, ok.Body.String())
	}
}
