package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/service"
	"github.com/msomdec/house-rentals/internal/view"
)

const msgPaymentNotRecorded = "Payment was successful, but failed to update the database. Please contact support."

// PaymentHandler hands rent payments off to the checkout widget.
type PaymentHandler struct {
	payments *service.PaymentService
	listings *service.ListingService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService, listings *service.ListingService) *PaymentHandler {
	return &PaymentHandler{payments: payments, listings: listings}
}

// HandlePage renders the contact form that opens the checkout widget.
// GET /listings/{id}/pay
func (h *PaymentHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	listing, err := h.listings.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			render(w, r, http.StatusNotFound, view.ErrorPage(user.FullName, http.StatusNotFound, "Not Found", msgPropertyNotFound))
			return
		}
		slog.Error("get listing", "error", err)
		render(w, r, http.StatusInternalServerError, view.ErrorPage(user.FullName, http.StatusInternalServerError, "Error", msgSomethingWrong))
		return
	}

	render(w, r, http.StatusOK, view.PaymentPage(user.FullName, listing, user.Email, user.Phone))
}

// HandleCheckout validates the contact details and returns widget options.
// POST /listings/{id}/pay/checkout
// Request:  {"email":"...","phone":"..."}
// Response: {"key":"...","amount":100,"currency":"INR",...}
func (h *PaymentHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	opts, err := h.payments.Checkout(r.Context(), r.PathValue("id"), req.Email, req.Phone)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusUnprocessableEntity, ve.Message)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, msgPropertyNotFound)
		default:
			slog.Error("checkout", "listing", r.PathValue("id"), "error", err)
			writeError(w, http.StatusBadGateway, "Payment failed. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, opts)
}

// HandleCallback records a payment the widget reported as successful.
// POST /listings/{id}/pay/callback
// Request:  {"paymentId":"...","orderId":"...","signature":"...","email":"...","phone":"..."}
// Response: {"message":"Payment Successful!","redirect":"/listings/{id}","payment":{...}}
func (h *PaymentHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentID string `json:"paymentId"`
		OrderID   string `json:"orderId"`
		Signature string `json:"signature"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id := r.PathValue("id")
	payment, err := h.payments.Record(r.Context(), service.CallbackInput{
		ListingID: id,
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, domain.ErrInvalidSignature):
			slog.Warn("payment signature rejected", "listing", id, "payment", req.PaymentID)
			writeError(w, http.StatusBadRequest, "Payment verification failed.")
		case errors.Is(err, service.ErrPaymentNotRecorded):
			slog.Error("record payment", "listing", id, "payment", req.PaymentID, "error", err)
			writeError(w, http.StatusBadGateway, msgPaymentNotRecorded)
		default:
			slog.Error("record payment", "listing", id, "error", err)
			writeError(w, http.StatusInternalServerError, msgSomethingWrong)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Payment Successful!",
		"redirect": "/listings/" + id,
		"payment":  toPaymentDTO(payment),
	})
}

// HandleHistory lists payments recorded against a listing. Owner only.
// GET /api/listings/{id}/payments
// Response: {"payments": [...]}
func (h *PaymentHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id := r.PathValue("id")

	listing, err := h.listings.GetByID(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("get listing", "error", err)
		writeError(w, http.StatusInternalServerError, msgSomethingWrong)
		return
	}
	if listing == nil || listing.OwnerID != user.ID {
		writeError(w, http.StatusNotFound, msgPropertyNotFound)
		return
	}

	payments, err := h.payments.History(r.Context(), id)
	if err != nil {
		slog.Error("list payments", "listing", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgSomethingWrong)
		return
	}

	dtos := make([]PaymentDTO, len(payments))
	for i := range payments {
		dtos[i] = toPaymentDTO(&payments[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": dtos})
}
