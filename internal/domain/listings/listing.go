package listings

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired    = errors.New("listings: id is required")
	ErrTitleRequired = errors.New("listings: title is required")
	ErrPriceInvalid  = errors.New("listings: nightly price must be positive")
	ErrNotFound      = errors.New("listings: not found")
	ErrInvalidID     = errors.New("listings: invalid listing id")
)

type ListingID string

type HostID string

// Listing is a bookable property record. Prices are whole currency units per
// night.
type Listing struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	Address       string
	PricePerNight int64
	ImageURL      string
	Guests        int
	Bedrooms      int
	Bathrooms     int
	Amenities     []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	All(ctx context.Context) ([]*Listing, error)
	Search(ctx context.Context, params SearchParams) ([]*Listing, error)
	Save(ctx context.Context, listing *Listing) error
}

type CreateParams struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	Address       string
	PricePerNight int64
	ImageURL      string
	Guests        int
	Bedrooms      int
	Bathrooms     int
	Amenities     []string
	CreatedAt     time.Time
}

func NewListing(params CreateParams) (*Listing, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if params.PricePerNight <= 0 {
		return nil, ErrPriceInvalid
	}
	guests := params.Guests
	if guests <= 0 {
		guests = 1
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &Listing{
		ID:            ListingID(id),
		Host:          params.Host,
		Title:         title,
		Description:   strings.TrimSpace(params.Description),
		Address:       strings.TrimSpace(params.Address),
		PricePerNight: params.PricePerNight,
		ImageURL:      strings.TrimSpace(params.ImageURL),
		Guests:        guests,
		Bedrooms:      params.Bedrooms,
		Bathrooms:     params.Bathrooms,
		Amenities:     normalizeAmenities(params.Amenities),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (l *Listing) SetImageURL(url string, now time.Time) {
	l.ImageURL = strings.TrimSpace(url)
	if now.IsZero() {
		now = time.Now()
	}
	l.UpdatedAt = now.UTC()
}

func normalizeAmenities(amenities []string) []string {
	if len(amenities) == 0 {
		return nil
	}
	out := make([]string, 0, len(amenities))
	seen := make(map[string]struct{}, len(amenities))
	for _, amenity := range amenities {
		amenity = strings.TrimSpace(amenity)
		if amenity == "" {
			continue
		}
		key := strings.ToLower(amenity)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, amenity)
	}
	return out
}
