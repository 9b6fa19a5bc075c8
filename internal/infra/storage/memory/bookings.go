package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "stayfinder/internal/domain/booking"
	domainuser "stayfinder/internal/domain/user"
)

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu   sync.RWMutex
	byID map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{byID: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if booking, ok := r.byID[id]; ok {
		return cloneBooking(booking), nil
	}
	return nil, domainbooking.ErrNotFound
}

// ByUser returns the user's bookings newest first.
func (r *BookingRepository) ByUser(ctx context.Context, userID domainuser.ID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domainbooking.Booking
	for _, booking := range r.byID {
		if booking.UserID == userID {
			result = append(result, cloneBooking(booking))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	if booking == nil || strings.TrimSpace(string(booking.ID)) == "" {
		return domainbooking.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domainbooking.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	if b == nil {
		return nil
	}
	copyBooking := *b
	return &copyBooking
}
