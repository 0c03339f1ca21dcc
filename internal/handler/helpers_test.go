package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/handler"
	"github.com/msomdec/house-rentals/internal/payment/razorpay"
	"github.com/msomdec/house-rentals/internal/repository/sqlite"
	"github.com/msomdec/house-rentals/internal/service"
)

const (
	testJWTSecret     = "test-secret-for-handler-tests-0123456789"
	testGatewaySecret = "rzp_test_secret"
)

type testEnv struct {
	db       *sqlite.DB
	services handler.Services
	srv      *httptest.Server
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestServices wires every service over a fresh SQLite database. The
// gateway is a real client pointed at a stub orders endpoint.
func newTestServices(t *testing.T) (handler.Services, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)

	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_test_1","status":"created"}`))
	}))
	t.Cleanup(orders.Close)
	gateway := razorpay.New("rzp_test_key", testGatewaySecret, razorpay.WithBaseURL(orders.URL))

	limiter := service.PerMinute(1000)
	t.Cleanup(limiter.Stop)

	return handler.Services{
		DB:           db,
		Auth:         service.NewAuthService(db.Users(), testJWTSecret, 4),
		Listings:     service.NewListingService(db.Listings()),
		Profiles:     service.NewProfileService(db.Profiles()),
		Payments:     service.NewPaymentService(db.Payments(), db.Listings(), gateway, service.PaymentConfig{Amount: 100, Currency: "INR"}),
		Images:       service.NewImageService(db.FileStore()),
		LoginLimiter: limiter,
		CookieSecure: false,
	}, db
}

func newTestEnvWith(t *testing.T, s handler.Services, db *sqlite.DB) *testEnv {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, s)
	srv := httptest.NewServer(handler.Instrument(handler.SecurityHeaders(mux)))
	t.Cleanup(srv.Close)
	return &testEnv{db: db, services: s, srv: srv}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, db := newTestServices(t)
	return newTestEnvWith(t, s, db)
}

// newClient returns a client with its own cookie jar that does not follow
// redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}
}

// signupClient registers an account through the form and returns a client
// holding its session cookie.
func (e *testEnv) signupClient(t *testing.T, email, fullName string) *http.Client {
	t.Helper()
	client := newClient(t)
	resp, err := client.PostForm(e.srv.URL+"/signup", url.Values{
		"full_name": {fullName},
		"phone":     {"+919876543210"},
		"email":     {email},
		"password":  {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /signup: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("signup %s: expected 303, got %d", email, resp.StatusCode)
	}
	return client
}

func (e *testEnv) userByEmail(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := e.db.Users().GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("GetByEmail %s: %v", email, err)
	}
	return u
}

func (e *testEnv) createListing(t *testing.T, ownerEmail, title, location string) *domain.Listing {
	t.Helper()
	owner := e.userByEmail(t, ownerEmail)
	l, err := e.services.Listings.Create(context.Background(), owner.ID, service.ListingInput{
		Title:     title,
		Location:  location,
		Price:     20000,
		Bedrooms:  2,
		Bathrooms: 1,
		Area:      850,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return l
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func postJSON(t *testing.T, client *http.Client, u string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := client.Post(u, "application/json", strings.NewReader(string(b)))
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
}
