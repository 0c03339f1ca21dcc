package view

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/house-rentals/internal/domain"
)

// HomeLanding is shown to visitors without a session.
func HomeLanding() templ.Component {
	return page("landing", "Welcome to House Rentals", "", nil)
}

type homeBody struct {
	Query    string
	Listings []domain.Listing
}

// HomePage renders the search box and the listing grid.
func HomePage(userName, query string, listings []domain.Listing) templ.Component {
	return page("home", "Find Your Perfect Home", userName, homeBody{Query: query, Listings: listings})
}

// ListingGrid is the inner content of #listing-grid.
func ListingGrid(listings []domain.Listing) templ.Component {
	return fragment("listing_grid", listings)
}

type detailBody struct {
	Listing    *domain.Listing
	OwnerEmail string
	CanEdit    bool
}

// ListingDetailPage shows one listing with the owner's contact email.
func ListingDetailPage(userName string, l *domain.Listing, ownerEmail string, canEdit bool) templ.Component {
	return page("listing_detail", l.Title, userName, detailBody{Listing: l, OwnerEmail: ownerEmail, CanEdit: canEdit})
}

// ListingForm holds the add/edit form fields as the user typed them.
type ListingForm struct {
	ID          string
	Title       string
	Description string
	Price       string
	Location    string
	Bedrooms    string
	Bathrooms   string
	Area        string
	ImageURL    string
}

// ListingFormFrom fills the form from a stored listing.
func ListingFormFrom(l *domain.Listing) ListingForm {
	return ListingForm{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       strconv.FormatInt(l.Price, 10),
		Location:    l.Location,
		Bedrooms:    strconv.Itoa(l.Bedrooms),
		Bathrooms:   strconv.Itoa(l.Bathrooms),
		Area:        strconv.Itoa(l.Area),
		ImageURL:    l.ImageURL,
	}
}

type formBody struct {
	Form  ListingForm
	Error string
}

// ListingFormPage renders the add form, or the edit form when form.ID is set.
func ListingFormPage(userName string, form ListingForm, errMsg string) templ.Component {
	title := "Add House"
	if form.ID != "" {
		title = "Edit House"
	}
	return page("listing_form", title, userName, formBody{Form: form, Error: errMsg})
}

type profileBody struct {
	Profile  *domain.Profile
	Email    string
	Listings []domain.Listing
	Status   ProfileStatusData
}

// ProfileStatusData is the message under the profile form.
type ProfileStatusData struct {
	Message string
	IsError bool
}

// ProfilePage renders the profile editor followed by the user's own listings.
// profile may be nil when loading failed, in which case only the status
// message is shown.
func ProfilePage(userName, email string, profile *domain.Profile, listings []domain.Listing, status ProfileStatusData) templ.Component {
	return page("profile", "Profile", userName, profileBody{Profile: profile, Email: email, Listings: listings, Status: status})
}

// ProfileStatus is the inner content of #profile-status.
func ProfileStatus(status ProfileStatusData) templ.Component {
	return fragment("profile_status", status)
}

type paymentBody struct {
	Listing *domain.Listing
	Email   string
	Phone   string
}

// PaymentPage collects contact details and opens the checkout widget.
func PaymentPage(userName string, l *domain.Listing, email, phone string) templ.Component {
	return page("payment", "Pay Rent", userName, paymentBody{Listing: l, Email: email, Phone: phone})
}

type authBody struct {
	FullName string
	Phone    string
	Email    string
	Error    string
}

// LoginPage renders the sign-in form.
func LoginPage(email, errMsg string) templ.Component {
	return page("login", "Sign In", "", authBody{Email: email, Error: errMsg})
}

// SignupPage renders the registration form, keeping what the user typed.
func SignupPage(fullName, phone, email, errMsg string) templ.Component {
	return page("signup", "Create Account", "", authBody{FullName: fullName, Phone: phone, Email: email, Error: errMsg})
}

type errorBody struct {
	Status  int
	Message string
}

// ErrorPage renders a full page for a failed request.
func ErrorPage(userName string, status int, title, message string) templ.Component {
	return page("error", title, userName, errorBody{Status: status, Message: message})
}
