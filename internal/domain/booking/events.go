package booking

import (
	"time"

	"stayfinder/internal/domain/listings"
	"stayfinder/internal/domain/user"
)

type BookingCreated struct {
	BookingID  BookingID
	ListingID  listings.ListingID
	UserID     user.ID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalPrice int64
	At         time.Time
}

func (e BookingCreated) EventName() string     { return "booking.created" }
func (e BookingCreated) AggregateID() string   { return string(e.BookingID) }
func (e BookingCreated) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	ListingID listings.ListingID
	UserID    user.ID
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
