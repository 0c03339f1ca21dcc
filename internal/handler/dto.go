package handler

import (
	"time"

	"github.com/msomdec/house-rentals/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ListingDTO is the JSON representation of a listing.
type ListingDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Location    string `json:"location"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	Area        int    `json:"area"`
	ImageURL    string `json:"imageUrl"`
	OwnerID     int64  `json:"ownerId"`
	CreatedAt   string `json:"createdAt"`
}

func toListingDTO(l *domain.Listing) ListingDTO {
	return ListingDTO{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Area:        l.Area,
		ImageURL:    l.ImageURL,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

func toListingDTOs(listings []domain.Listing) []ListingDTO {
	dtos := make([]ListingDTO, len(listings))
	for i := range listings {
		dtos[i] = toListingDTO(&listings[i])
	}
	return dtos
}

// PaymentDTO is the JSON representation of a recorded payment.
type PaymentDTO struct {
	ID        string `json:"id"`
	ListingID string `json:"listingId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toPaymentDTO(p *domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID,
		ListingID: p.ListingID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		PaymentID: p.GatewayPaymentID,
		Status:    p.Status,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
