package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayfinder/internal/domain/listings"
	"stayfinder/internal/domain/user"
)

var (
	ErrIDRequired       = errors.New("booking: id is required")
	ErrListingRequired  = errors.New("booking: listing id is required")
	ErrUserRequired     = errors.New("booking: user id is required")
	ErrDatesRequired    = errors.New("booking: check-in and check-out dates are required")
	ErrDatesUnordered   = errors.New("booking: check-out must be after check-in")
	ErrTimesRequired    = errors.New("booking: check-in and check-out times are required")
	ErrGuestsInvalid    = errors.New("booking: number of guests must be at least 1")
	ErrPriceRequired    = errors.New("booking: total price is required")
	ErrNotFound         = errors.New("booking: not found")
	ErrInvalidID        = errors.New("booking: invalid booking id")
	ErrNotOwner         = errors.New("booking: not authorized to cancel this booking")
)

type BookingID string

// Booking reserves a listing for a user over a date range. Check-in/out times
// are free-form time-of-day strings supplied by the client.
type Booking struct {
	ID           BookingID
	ListingID    listings.ListingID
	UserID       user.ID
	CheckIn      time.Time
	CheckOut     time.Time
	CheckInTime  string
	CheckOutTime string
	Guests       int
	TotalPrice   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	ByUser(ctx context.Context, userID user.ID) ([]*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id BookingID) error
}

type CreateParams struct {
	ID           BookingID
	ListingID    listings.ListingID
	UserID       user.ID
	CheckIn      time.Time
	CheckOut     time.Time
	CheckInTime  string
	CheckOutTime string
	Guests       int
	TotalPrice   int64
	CreatedAt    time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.ListingID)) == "" {
		return nil, ErrListingRequired
	}
	if strings.TrimSpace(string(params.UserID)) == "" {
		return nil, ErrUserRequired
	}
	if params.CheckIn.IsZero() || params.CheckOut.IsZero() {
		return nil, ErrDatesRequired
	}
	if !params.CheckOut.After(params.CheckIn) {
		return nil, ErrDatesUnordered
	}
	checkInTime := strings.TrimSpace(params.CheckInTime)
	checkOutTime := strings.TrimSpace(params.CheckOutTime)
	if checkInTime == "" || checkOutTime == "" {
		return nil, ErrTimesRequired
	}
	if params.Guests < 1 {
		return nil, ErrGuestsInvalid
	}
	if params.TotalPrice <= 0 {
		return nil, ErrPriceRequired
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &Booking{
		ID:           BookingID(id),
		ListingID:    params.ListingID,
		UserID:       params.UserID,
		CheckIn:      params.CheckIn.UTC(),
		CheckOut:     params.CheckOut.UTC(),
		CheckInTime:  checkInTime,
		CheckOutTime: checkOutTime,
		Guests:       params.Guests,
		TotalPrice:   params.TotalPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// OwnedBy reports whether the booking belongs to the given user. Only the
// owning user may cancel.
func (b *Booking) OwnedBy(userID user.ID) bool {
	return b.UserID == userID
}
