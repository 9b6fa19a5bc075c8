package dto

import (
	"time"

	domainlistings "stayfinder/internal/domain/listings"
)

type Listing struct {
	ID            string    `json:"id"`
	Host          string    `json:"host,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Address       string    `json:"address,omitempty"`
	PricePerNight int64     `json:"pricePerNight"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Guests        int       `json:"guests"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Amenities     []string  `json:"amenities,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func MapListing(l *domainlistings.Listing) Listing {
	if l == nil {
		return Listing{}
	}
	return Listing{
		ID:            string(l.ID),
		Host:          string(l.Host),
		Title:         l.Title,
		Description:   l.Description,
		Address:       l.Address,
		PricePerNight: l.PricePerNight,
		ImageURL:      l.ImageURL,
		Guests:        l.Guests,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		Amenities:     append([]string(nil), l.Amenities...),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func MapListings(items []*domainlistings.Listing) []Listing {
	out := make([]Listing, 0, len(items))
	for _, item := range items {
		out = append(out, MapListing(item))
	}
	return out
}
