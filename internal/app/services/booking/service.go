package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"stayfinder/internal/app/events"
	domainbooking "stayfinder/internal/domain/booking"
	domainlistings "stayfinder/internal/domain/listings"
	domainuser "stayfinder/internal/domain/user"
)

type Service struct {
	Bookings domainbooking.Repository
	Listings domainlistings.Repository
	Events   events.Emitter
	Logger   *slog.Logger
}

type CreateParams struct {
	UserID       domainuser.ID
	ListingID    domainlistings.ListingID
	CheckIn      time.Time
	CheckOut     time.Time
	CheckInTime  string
	CheckOutTime string
	Guests       int
	TotalPrice   int64
}

// View pairs a booking with its listing for guest-facing responses.
type View struct {
	Booking *domainbooking.Booking
	Listing *domainlistings.Listing
}

// Create validates the request and persists the booking. The referenced
// listing must exist. Overlapping bookings for the same listing and dates are
// all accepted; the store performs no availability check.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domainbooking.Booking, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(params.ListingID)) == "" {
		return nil, domainbooking.ErrListingRequired
	}
	if _, err := s.Listings.ByID(ctx, params.ListingID); err != nil {
		return nil, err
	}
	booking, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:           domainbooking.BookingID(uuid.NewString()),
		ListingID:    params.ListingID,
		UserID:       params.UserID,
		CheckIn:      params.CheckIn,
		CheckOut:     params.CheckOut,
		CheckInTime:  params.CheckInTime,
		CheckOutTime: params.CheckOutTime,
		Guests:       params.Guests,
		TotalPrice:   params.TotalPrice,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, booking); err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, domainbooking.BookingCreated{
		BookingID:  booking.ID,
		ListingID:  booking.ListingID,
		UserID:     booking.UserID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		At:         booking.CreatedAt,
	})
	if s.Logger != nil {
		s.Logger.Info("booking created", "booking_id", booking.ID, "listing_id", booking.ListingID, "user_id", booking.UserID)
	}
	return booking, nil
}

// ListForUser returns the requester's bookings, newest first, each paired
// with its listing when the listing still resolves.
func (s *Service) ListForUser(ctx context.Context, userID domainuser.ID) ([]View, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(bookings))
	for _, booking := range bookings {
		view := View{Booking: booking}
		listing, err := s.Listings.ByID(ctx, booking.ListingID)
		if err == nil {
			view.Listing = listing
		} else if !errors.Is(err, domainlistings.ErrNotFound) {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Cancel deletes the booking. Only the owning user may cancel; anyone else
// gets ErrNotOwner regardless of what else they are allowed to do.
func (s *Service) Cancel(ctx context.Context, id domainbooking.BookingID, requester domainuser.ID) error {
	if err := s.ensureDependencies(); err != nil {
		return err
	}
	if strings.TrimSpace(string(id)) == "" {
		return domainbooking.ErrInvalidID
	}
	booking, err := s.Bookings.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !booking.OwnedBy(requester) {
		return domainbooking.ErrNotOwner
	}
	if err := s.Bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.Events.Emit(ctx, domainbooking.BookingCancelled{
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		UserID:    booking.UserID,
		At:        time.Now().UTC(),
	})
	if s.Logger != nil {
		s.Logger.Info("booking cancelled", "booking_id", booking.ID, "user_id", requester)
	}
	return nil
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Bookings == nil:
		return errors.New("booking: repository required")
	case s.Listings == nil:
		return errors.New("booking: listing repository required")
	default:
		return nil
	}
}
