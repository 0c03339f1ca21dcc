package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/house-rentals/internal/service"
	"github.com/msomdec/house-rentals/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// HomeHandler serves the landing page and the listing search.
type HomeHandler struct {
	listings *service.ListingService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(listings *service.ListingService) *HomeHandler {
	return &HomeHandler{listings: listings}
}

// HandleHome renders the landing page for visitors and the searchable
// listing grid for signed-in users. ?q= filters by title or location.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		render(w, r, http.StatusNotFound, view.ErrorPage(displayName(r), http.StatusNotFound, "Not Found", "Page not found."))
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		render(w, r, http.StatusOK, view.HomeLanding())
		return
	}

	query := r.URL.Query().Get("q")
	listings, err := h.listings.Search(r.Context(), query)
	if err != nil {
		slog.Error("search listings", "error", err)
		render(w, r, http.StatusInternalServerError, view.ErrorPage(user.FullName, http.StatusInternalServerError, "Error", msgSomethingWrong))
		return
	}

	render(w, r, http.StatusOK, view.HomePage(user.FullName, query, listings))
}

// HandleSearch re-runs the filter for the search box signal and patches
// the listing grid.
// GET /listings/search
func (h *HomeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var signals struct {
		Query string `json:"query"`
	}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	listings, err := h.listings.Search(r.Context(), signals.Query)
	if err != nil {
		slog.Error("search listings", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.ListingGrid(listings),
		datastar.WithSelectorID("listing-grid"),
		datastar.WithModeInner(),
	)
}

func displayName(r *http.Request) string {
	if user := UserFromContext(r.Context()); user != nil {
		return user.FullName
	}
	return ""
}
