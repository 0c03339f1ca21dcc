package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/service"
	"github.com/msomdec/house-rentals/internal/view"
)

const (
	msgPropertyNotFound = "Property not found."
	msgImageTooLarge    = "Image exceeds the 5MB limit."
	msgFormUnreadable   = "Could not read the submitted form. Please try again."
)

// ListingHandler handles listing pages and the add/edit forms.
type ListingHandler struct {
	listings *service.ListingService
	images   *service.ImageService
	auth     *service.AuthService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *service.ListingService, images *service.ImageService, auth *service.AuthService) *ListingHandler {
	return &ListingHandler{listings: listings, images: images, auth: auth}
}

// HandleView renders a listing with its owner's contact email.
// GET /listings/{id}
func (h *ListingHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	listing, err := h.listings.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderLookupError(w, r, user, err)
		return
	}

	ownerEmail := ""
	if owner, err := h.auth.GetUserByID(r.Context(), listing.OwnerID); err == nil {
		ownerEmail = owner.Email
	} else if !errors.Is(err, domain.ErrNotFound) {
		slog.Error("get listing owner", "listing", listing.ID, "error", err)
	}

	render(w, r, http.StatusOK, view.ListingDetailPage(user.FullName, listing, ownerEmail, listing.OwnerID == user.ID))
}

// HandleNew renders the empty add-listing form.
// GET /listings/new
func (h *ListingHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	render(w, r, http.StatusOK, view.ListingFormPage(user.FullName, view.ListingForm{}, ""))
}

// HandleCreate processes the add-listing form.
// POST /listings
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	form, in, errMsg := h.parseForm(w, r)
	if errMsg != "" {
		render(w, r, http.StatusUnprocessableEntity, view.ListingFormPage(user.FullName, form, errMsg))
		return
	}

	listing, err := h.listings.Create(r.Context(), user.ID, in)
	if err != nil {
		h.discardUpload(r, in)
		status, msg := listingFormError(err)
		render(w, r, status, view.ListingFormPage(user.FullName, form, msg))
		return
	}

	http.Redirect(w, r, "/listings/"+listing.ID, http.StatusSeeOther)
}

// HandleEdit renders the edit form. Only the owner may see it.
// GET /listings/{id}/edit
func (h *ListingHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	listing, err := h.listings.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderLookupError(w, r, user, err)
		return
	}
	if listing.OwnerID != user.ID {
		render(w, r, http.StatusNotFound, view.ErrorPage(user.FullName, http.StatusNotFound, "Not Found", msgPropertyNotFound))
		return
	}

	render(w, r, http.StatusOK, view.ListingFormPage(user.FullName, view.ListingFormFrom(listing), ""))
}

// HandleUpdate processes the edit form.
// POST /listings/{id}
func (h *ListingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id := r.PathValue("id")

	form, in, errMsg := h.parseForm(w, r)
	form.ID = id
	if errMsg != "" {
		render(w, r, http.StatusUnprocessableEntity, view.ListingFormPage(user.FullName, form, errMsg))
		return
	}

	listing, err := h.listings.Update(r.Context(), user.ID, id, in)
	if err != nil {
		h.discardUpload(r, in)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			render(w, r, http.StatusNotFound, view.ErrorPage(user.FullName, http.StatusNotFound, "Not Found", msgPropertyNotFound))
			return
		}
		status, msg := listingFormError(err)
		render(w, r, status, view.ListingFormPage(user.FullName, form, msg))
		return
	}

	http.Redirect(w, r, "/listings/"+listing.ID, http.StatusSeeOther)
}

// HandleAPIList returns listings as JSON, filtered by ?q=.
// GET /api/listings
func (h *ListingHandler) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("search listings", "error", err)
		writeError(w, http.StatusInternalServerError, msgSomethingWrong)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": toListingDTOs(listings)})
}

func (h *ListingHandler) renderLookupError(w http.ResponseWriter, r *http.Request, user *domain.User, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		render(w, r, http.StatusNotFound, view.ErrorPage(user.FullName, http.StatusNotFound, "Not Found", msgPropertyNotFound))
		return
	}
	slog.Error("get listing", "error", err)
	render(w, r, http.StatusInternalServerError, view.ErrorPage(user.FullName, http.StatusInternalServerError, "Error", msgSomethingWrong))
}

// parseForm reads the multipart listing form, storing an uploaded photo if
// one was attached. It returns the form as typed for re-rendering, the
// parsed input, and a message when the form cannot be used.
func (h *ListingHandler) parseForm(w http.ResponseWriter, r *http.Request) (view.ListingForm, service.ListingInput, string) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+(1<<20))
	if err := r.ParseMultipartForm(service.MaxImageSize + (1 << 20)); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if errors.As(err, new(*http.MaxBytesError)) {
			return view.ListingForm{}, service.ListingInput{}, msgImageTooLarge
		}
		slog.Warn("parse listing form", "error", err)
		return view.ListingForm{}, service.ListingInput{}, msgFormUnreadable
	}

	form := view.ListingForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       strings.TrimSpace(r.FormValue("price")),
		Location:    r.FormValue("location"),
		Bedrooms:    strings.TrimSpace(r.FormValue("bedrooms")),
		Bathrooms:   strings.TrimSpace(r.FormValue("bathrooms")),
		Area:        strings.TrimSpace(r.FormValue("area")),
		ImageURL:    r.FormValue("image_url"),
	}

	in := service.ListingInput{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		ImageURL:    form.ImageURL,
	}

	var err error
	if in.Price, err = parsePrice(form.Price); err != nil {
		return form, in, err.Error()
	}
	if in.Bedrooms, err = parseCount(form.Bedrooms, "Bedrooms"); err != nil {
		return form, in, err.Error()
	}
	if in.Bathrooms, err = parseCount(form.Bathrooms, "Bathrooms"); err != nil {
		return form, in, err.Error()
	}
	if in.Area, err = parseCount(form.Area, "Area"); err != nil {
		return form, in, err.Error()
	}

	// Validate before storing any upload so a bad form leaves no orphan blob.
	if msg := service.ValidateListing(in); msg != "" {
		return form, in, msg
	}

	url, msg := h.storeUpload(r)
	if msg != "" {
		return form, in, msg
	}
	if url != "" {
		in.ImageURL = url
		form.ImageURL = url
	}
	return form, in, ""
}

func (h *ListingHandler) storeUpload(r *http.Request) (string, string) {
	if r.MultipartForm == nil {
		return "", ""
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		// No file attached.
		return "", ""
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		slog.Error("read upload", "error", err)
		return "", msgSomethingWrong
	}
	if len(data) == 0 {
		return "", ""
	}

	// Detect content type from file bytes (more reliable than multipart header).
	url, err := h.images.Upload(r.Context(), http.DetectContentType(data), data)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return "", ve.Message
		}
		slog.Error("upload image", "error", err)
		return "", msgSomethingWrong
	}
	return url, ""
}

// discardUpload removes a photo stored for a form that then failed to save.
func (h *ListingHandler) discardUpload(r *http.Request, in service.ListingInput) {
	if in.ImageURL == "" || in.ImageURL == r.FormValue("image_url") {
		return
	}
	if err := h.images.Discard(r.Context(), in.ImageURL); err != nil {
		slog.Error("discard image", "url", in.ImageURL, "error", err)
	}
}

func parsePrice(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("Price must be a whole number.")
	}
	return n, nil
}

// parseCount reads a room count or area. Values outside int32 are rejected
// so the result fits an int on every platform.
func parseCount(s, field string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.New(field + " must be a whole number.")
	}
	return int(n), nil
}

func listingFormError(err error) (int, string) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Message
	}
	slog.Error("save listing", "error", err)
	return http.StatusInternalServerError, msgSomethingWrong
}
