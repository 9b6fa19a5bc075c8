package dto

import (
	"time"

	bookingsvc "stayfinder/internal/app/services/booking"
	domainbooking "stayfinder/internal/domain/booking"
)

type Booking struct {
	ID             string    `json:"id"`
	ListingID      string    `json:"listingId"`
	UserID         string    `json:"userId"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	CheckInTime    string    `json:"checkInTime"`
	CheckOutTime   string    `json:"checkOutTime"`
	NumberOfGuests int       `json:"numberOfGuests"`
	TotalPrice     int64     `json:"totalPrice"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserBooking embeds the resolved listing the way the original API populated
// the listing reference for the guest view.
type UserBooking struct {
	Booking
	Listing *Listing `json:"listing,omitempty"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	if b == nil {
		return Booking{}
	}
	return Booking{
		ID:             string(b.ID),
		ListingID:      string(b.ListingID),
		UserID:         string(b.UserID),
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		CheckInTime:    b.CheckInTime,
		CheckOutTime:   b.CheckOutTime,
		NumberOfGuests: b.Guests,
		TotalPrice:     b.TotalPrice,
		CreatedAt:      b.CreatedAt,
	}
}

func MapUserBookings(views []bookingsvc.View) []UserBooking {
	out := make([]UserBooking, 0, len(views))
	for _, view := range views {
		mapped := UserBooking{Booking: MapBooking(view.Booking)}
		if view.Listing != nil {
			listing := MapListing(view.Listing)
			mapped.Listing = &listing
		}
		out = append(out, mapped)
	}
	return out
}
