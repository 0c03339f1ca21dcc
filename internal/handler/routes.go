package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/house-rentals/internal/service"
)

// Services bundles what the routes depend on.
type Services struct {
	DB       Pinger
	Auth     *service.AuthService
	Listings *service.ListingService
	Profiles *service.ProfileService
	Payments *service.PaymentService
	Images   *service.ImageService
	// LoginLimiter throttles POST /login and POST /signup per client IP.
	LoginLimiter *service.TokenBucket
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	authHandler := NewAuthHandler(s.Auth, s.CookieSecure)
	homeHandler := NewHomeHandler(s.Listings)
	listingHandler := NewListingHandler(s.Listings, s.Images, s.Auth)
	profileHandler := NewProfileHandler(s.Profiles, s.Listings)
	paymentHandler := NewPaymentHandler(s.Payments, s.Listings)
	imageHandler := NewImageHandler(s.Images)

	page := func(h http.HandlerFunc) http.Handler { return RequirePage(s.Auth, h) }
	api := func(h http.HandlerFunc) http.Handler { return RequireAuth(s.Auth, h) }
	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(s.Auth, h) }
	limited := func(h http.HandlerFunc) http.Handler { return RateLimit(s.LoginLimiter, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz(s.DB))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.Handle("GET /login", optional(authHandler.HandleLoginPage))
	mux.Handle("POST /login", limited(authHandler.HandleLogin))
	mux.Handle("GET /signup", optional(authHandler.HandleSignupPage))
	mux.Handle("POST /signup", limited(authHandler.HandleSignup))
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	// Listings
	mux.Handle("GET /", optional(homeHandler.HandleHome))
	mux.Handle("GET /listings/search", api(homeHandler.HandleSearch))
	mux.Handle("GET /listings/new", page(listingHandler.HandleNew))
	mux.Handle("POST /listings", page(listingHandler.HandleCreate))
	mux.Handle("GET /listings/{id}", page(listingHandler.HandleView))
	mux.Handle("GET /listings/{id}/edit", page(listingHandler.HandleEdit))
	mux.Handle("POST /listings/{id}", page(listingHandler.HandleUpdate))
	mux.HandleFunc("GET /images/{key}", imageHandler.HandleServe)

	// Profile
	mux.Handle("GET /profile", page(profileHandler.HandleView))
	mux.Handle("POST /profile", page(profileHandler.HandleUpdate))

	// Payment
	mux.Handle("GET /listings/{id}/pay", page(paymentHandler.HandlePage))
	mux.Handle("POST /listings/{id}/pay/checkout", api(paymentHandler.HandleCheckout))
	mux.Handle("POST /listings/{id}/pay/callback", api(paymentHandler.HandleCallback))

	// JSON API
	mux.Handle("GET /api/auth/me", api(authHandler.HandleMe))
	mux.Handle("GET /api/listings", api(listingHandler.HandleAPIList))
	mux.Handle("GET /api/listings/{id}/payments", api(paymentHandler.HandleHistory))
}
