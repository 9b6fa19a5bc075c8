package memory

import (
	"context"
	"strings"
	"sync"

	"stayfinder/internal/domain/listings"
)

// ListingRepository stores listings in memory, preserving insertion order so
// catalog responses mirror the store-native ordering of the document
// database.
type ListingRepository struct {
	mu    sync.RWMutex
	order []listings.ListingID
	byID  map[listings.ListingID]*listings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{byID: make(map[listings.ListingID]*listings.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id listings.ListingID) (*listings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if listing, ok := r.byID[id]; ok {
		return cloneListing(listing), nil
	}
	return nil, listings.ErrNotFound
}

func (r *ListingRepository) All(ctx context.Context) ([]*listings.Listing, error) {
	return r.Search(ctx, listings.SearchParams{})
}

func (r *ListingRepository) Search(ctx context.Context, params listings.SearchParams) ([]*listings.Listing, error) {
	params = params.Normalized()
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*listings.Listing, 0, len(r.order))
	for _, id := range r.order {
		listing, ok := r.byID[id]
		if !ok {
			continue
		}
		if params.Matches(listing) {
			result = append(result, cloneListing(listing))
		}
	}
	return result, nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *listings.Listing) error {
	if listing == nil || strings.TrimSpace(string(listing.ID)) == "" {
		return listings.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[listing.ID]; !ok {
		r.order = append(r.order, listing.ID)
	}
	r.byID[listing.ID] = cloneListing(listing)
	return nil
}

func cloneListing(l *listings.Listing) *listings.Listing {
	if l == nil {
		return nil
	}
	copyListing := *l
	copyListing.Amenities = append([]string(nil), l.Amenities...)
	return &copyListing
}
