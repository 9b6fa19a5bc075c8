package ginserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayfinder/internal/app/dto"
	listingsvc "stayfinder/internal/app/services/listings"
	domainlistings "stayfinder/internal/domain/listings"
	"stayfinder/internal/domain/pricing"
)

type ListingHTTP interface {
	Catalog(c *gin.Context)
	Search(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Quote(c *gin.Context)
}

// ListingHandler wires the listing catalog to HTTP.
type ListingHandler struct {
	Service *listingsvc.Service
	Respond ErrorResponder
}

type createListingRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	PricePerNight int64    `json:"pricePerNight"`
	ImageURL      string   `json:"imageUrl"`
	Guests        int      `json:"guests"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
}

func (h ListingHandler) Catalog(c *gin.Context) {
	items, err := h.Service.All(c.Request.Context())
	if err != nil {
		h.Respond.ServerError(c, err, "error fetching listings")
		return
	}
	c.JSON(http.StatusOK, dto.MapListings(items))
}

// Search filters by optional location text and guest count. A non-positive or
// non-numeric guests parameter is rejected before the store is queried.
func (h ListingHandler) Search(c *gin.Context) {
	params := domainlistings.SearchParams{Location: c.Query("location")}
	guests, err := domainlistings.ParseGuests(c.Query("guests"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest count, must be a positive number"})
		return
	}
	params.Guests = guests
	items, err := h.Service.Search(c.Request.Context(), params)
	if err != nil {
		h.Respond.ServerError(c, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, dto.MapListings(items))
}

func (h ListingHandler) Get(c *gin.Context) {
	listing, err := h.Service.Get(c.Request.Context(), domainlistings.ListingID(c.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, domainlistings.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		case errors.Is(err, domainlistings.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		default:
			h.Respond.ServerError(c, err, "failed to fetch listing")
		}
		return
	}
	c.JSON(http.StatusOK, dto.MapListing(listing))
}

func (h ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	host := domainlistings.HostID("")
	if p, ok := currentPrincipal(c); ok {
		host = domainlistings.HostID(p.ID)
	}
	listing, err := h.Service.Create(c.Request.Context(), listingsvc.CreateParams{
		Host:          host,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		PricePerNight: req.PricePerNight,
		ImageURL:      req.ImageURL,
		Guests:        req.Guests,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Amenities:     req.Amenities,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainlistings.ErrTitleRequired),
			errors.Is(err, domainlistings.ErrPriceInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and a positive price are required"})
		default:
			h.Respond.ServerError(c, err, "failed to create listing")
		}
		return
	}
	c.JSON(http.StatusCreated, dto.MapListing(listing))
}

// Quote prices a stay for the listing over the requested range.
func (h ListingHandler) Quote(c *gin.Context) {
	checkIn, okIn := parseFlexibleTime(c.Query("check_in"))
	checkOut, okOut := parseFlexibleTime(c.Query("check_out"))
	if !okIn || !okOut {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in and check_out dates are required"})
		return
	}
	quote, err := h.Service.Quote(c.Request.Context(), domainlistings.ListingID(c.Param("id")), checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, domainlistings.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		case errors.Is(err, pricing.ErrRangeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "check-out must be after check-in"})
		default:
			h.Respond.ServerError(c, err, "failed to price stay")
		}
		return
	}
	c.JSON(http.StatusOK, quote)
}

func parseFlexibleTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

var _ ListingHTTP = ListingHandler{}
