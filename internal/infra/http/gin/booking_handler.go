package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayfinder/internal/app/dto"
	bookingsvc "stayfinder/internal/app/services/booking"
	domainbooking "stayfinder/internal/domain/booking"
	domainlistings "stayfinder/internal/domain/listings"
	domainuser "stayfinder/internal/domain/user"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	ListMine(c *gin.Context)
	Cancel(c *gin.Context)
}

type BookingHandler struct {
	Service *bookingsvc.Service
	Respond ErrorResponder
}

type createBookingRequest struct {
	ListingID      string `json:"listingId"`
	CheckIn        string `json:"checkIn"`
	CheckOut       string `json:"checkOut"`
	CheckInTime    string `json:"checkInTime"`
	CheckOutTime   string `json:"checkOutTime"`
	NumberOfGuests int    `json:"numberOfGuests"`
	TotalPrice     int64  `json:"totalPrice"`
}

func (h BookingHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	checkIn, okIn := parseFlexibleTime(req.CheckIn)
	checkOut, okOut := parseFlexibleTime(req.CheckOut)
	if req.ListingID == "" || !okIn || !okOut || req.CheckInTime == "" || req.CheckOutTime == "" ||
		req.NumberOfGuests == 0 || req.TotalPrice == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}
	booking, err := h.Service.Create(c.Request.Context(), bookingsvc.CreateParams{
		UserID:       domainuser.ID(p.ID),
		ListingID:    domainlistings.ListingID(req.ListingID),
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Guests:       req.NumberOfGuests,
		TotalPrice:   req.TotalPrice,
	})
	if err != nil {
		h.respondCreateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapBooking(booking))
}

func (h BookingHandler) ListMine(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	views, err := h.Service.ListForUser(c.Request.Context(), domainuser.ID(p.ID))
	if err != nil {
		h.Respond.ServerError(c, err, "failed to fetch user bookings")
		return
	}
	c.JSON(http.StatusOK, dto.MapUserBookings(views))
}

// Cancel deletes the requester's own booking. The ownership check fires
// before deletion so a foreign booking id always yields 403, not 404.
func (h BookingHandler) Cancel(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	err := h.Service.Cancel(c.Request.Context(), domainbooking.BookingID(c.Param("id")), domainuser.ID(p.ID))
	if err != nil {
		switch {
		case errors.Is(err, domainbooking.ErrNotFound), errors.Is(err, domainbooking.ErrInvalidID):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, domainbooking.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to cancel this booking"})
		default:
			h.Respond.ServerError(c, err, "server error while cancelling booking")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking canceled successfully"})
}

func (h BookingHandler) respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainlistings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
	case errors.Is(err, domainbooking.ErrListingRequired),
		errors.Is(err, domainbooking.ErrDatesRequired),
		errors.Is(err, domainbooking.ErrDatesUnordered),
		errors.Is(err, domainbooking.ErrTimesRequired),
		errors.Is(err, domainbooking.ErrGuestsInvalid),
		errors.Is(err, domainbooking.ErrPriceRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Respond.ServerError(c, err, "server error while creating booking")
	}
}

var _ BookingHTTP = BookingHandler{}
