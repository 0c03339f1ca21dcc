package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/service"
	"github.com/msomdec/house-rentals/internal/view"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// AuthHandler handles sign-in, sign-up and sign-out.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleLoginPage renders the sign-in form. Signed-in users go home.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, view.LoginPage("", ""))
}

// HandleLogin processes the sign-in form.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	email := r.FormValue("email")

	token, err := h.auth.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		render(w, r, loginStatus(err), view.LoginPage(email, loginMessage(err)))
		return
	}

	h.setSession(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSignupPage renders the registration form.
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, view.SignupPage("", "", "", ""))
}

// HandleSignup creates the account and signs the user straight in.
// POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := service.SignupInput{
		FullName: r.FormValue("full_name"),
		Phone:    r.FormValue("phone"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	rerender := func(status int, msg string) {
		render(w, r, status, view.SignupPage(in.FullName, in.Phone, in.Email, msg))
	}

	if _, err := h.auth.Register(r.Context(), in); err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			rerender(http.StatusUnprocessableEntity, ve.Message)
		case errors.Is(err, domain.ErrDuplicateEmail):
			rerender(http.StatusConflict, "An account with that email already exists.")
		default:
			slog.Error("register user", "error", err)
			rerender(http.StatusInternalServerError, msgSomethingWrong)
		}
		return
	}

	token, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		slog.Error("login after register", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.setSession(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.TokenTTL.Seconds()),
	})
}

func loginStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func loginMessage(err error) string {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid email or password."
	default:
		slog.Error("login user", "error", err)
		return msgSomethingWrong
	}
}
