package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/service"
	"github.com/msomdec/house-rentals/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// ProfileHandler shows and edits the signed-in user's profile.
type ProfileHandler struct {
	profiles *service.ProfileService
	listings *service.ListingService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService, listings *service.ListingService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, listings: listings}
}

// ownListings loads the "Your Listings" section. A failure only hides the
// section.
func (h *ProfileHandler) ownListings(r *http.Request, userID int64) []domain.Listing {
	listings, err := h.listings.ListByOwner(r.Context(), userID)
	if err != nil {
		slog.Error("list own listings", "user_id", userID, "error", err)
		return nil
	}
	return listings
}

// HandleView renders the profile, creating it on first visit.
// GET /profile
func (h *ProfileHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	profile, err := h.profiles.GetOrCreate(r.Context(), user.Email, user.FullName)
	if err != nil {
		slog.Error("load profile", "email", user.Email, "error", err)
		render(w, r, http.StatusInternalServerError, view.ProfilePage(user.FullName, user.Email, nil, nil,
			view.ProfileStatusData{Message: "Failed to load profile.", IsError: true}))
		return
	}

	render(w, r, http.StatusOK, view.ProfilePage(user.FullName, user.Email, profile, h.ownListings(r, user.ID), view.ProfileStatusData{}))
}

// HandleUpdate saves the full name. Datastar requests get the status line
// patched in place; plain form posts get the whole page back.
// POST /profile
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := view.ProfileStatusData{Message: "Profile updated successfully!"}
	code := http.StatusOK
	profile, err := h.profiles.UpdateFullName(r.Context(), user.Email, r.FormValue("full_name"))
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			status = view.ProfileStatusData{Message: ve.Message, IsError: true}
			code = http.StatusUnprocessableEntity
		} else {
			slog.Error("update profile", "email", user.Email, "error", err)
			status = view.ProfileStatusData{Message: "Failed to update profile.", IsError: true}
			code = http.StatusInternalServerError
		}
	}

	if r.Header.Get("Datastar-Request") == "true" {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(
			view.ProfileStatus(status),
			datastar.WithSelectorID("profile-status"),
			datastar.WithModeInner(),
		)
		return
	}

	if profile == nil {
		// Keep the form on screen with what the user typed.
		profile, _ = h.profiles.GetOrCreate(r.Context(), user.Email, user.FullName)
		if profile != nil {
			profile.FullName = r.FormValue("full_name")
		}
	}
	render(w, r, code, view.ProfilePage(user.FullName, user.Email, profile, h.ownListings(r, user.ID), status))
}
