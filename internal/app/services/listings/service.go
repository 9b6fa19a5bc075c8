package listings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"stayfinder/internal/app/events"
	domainlistings "stayfinder/internal/domain/listings"
	"stayfinder/internal/domain/pricing"
	"stayfinder/internal/infra/storage/s3"
)

type Service struct {
	Listings domainlistings.Repository
	Photos   s3.Uploader
	Events   events.Emitter
	Logger   *slog.Logger
}

type CreateParams struct {
	Host          domainlistings.HostID
	Title         string
	Description   string
	Address       string
	PricePerNight int64
	ImageURL      string
	Guests        int
	Bedrooms      int
	Bathrooms     int
	Amenities     []string
}

func (s *Service) All(ctx context.Context) ([]*domainlistings.Listing, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	return s.Listings.All(ctx)
}

func (s *Service) Get(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(id)) == "" {
		return nil, domainlistings.ErrInvalidID
	}
	return s.Listings.ByID(ctx, id)
}

// Search filters the catalog. A guest threshold below 1 is a caller error;
// the HTTP layer validates the raw query string before building params.
func (s *Service) Search(ctx context.Context, params domainlistings.SearchParams) ([]*domainlistings.Listing, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	return s.Listings.Search(ctx, params.Normalized())
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainlistings.Listing, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	listing, err := domainlistings.NewListing(domainlistings.CreateParams{
		ID:            domainlistings.ListingID(uuid.NewString()),
		Host:          params.Host,
		Title:         params.Title,
		Description:   params.Description,
		Address:       params.Address,
		PricePerNight: params.PricePerNight,
		ImageURL:      params.ImageURL,
		Guests:        params.Guests,
		Bedrooms:      params.Bedrooms,
		Bathrooms:     params.Bathrooms,
		Amenities:     params.Amenities,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Listings.Save(ctx, listing); err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, domainlistings.ListingCreated{
		ListingID: listing.ID,
		Host:      listing.Host,
		Title:     listing.Title,
		At:        listing.CreatedAt,
	})
	if s.Logger != nil {
		s.Logger.Info("listing created", "listing_id", listing.ID, "title", listing.Title)
	}
	return listing, nil
}

// Quote prices a stay at the listing's nightly rate.
func (s *Service) Quote(ctx context.Context, id domainlistings.ListingID, checkIn, checkOut time.Time) (pricing.Quote, error) {
	if err := s.ensureDependencies(); err != nil {
		return pricing.Quote{}, err
	}
	listing, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Calculate(listing.PricePerNight, checkIn, checkOut)
}

// AttachPhoto uploads the image to object storage and stores the returned
// public URL on the listing.
func (s *Service) AttachPhoto(ctx context.Context, id domainlistings.ListingID, filename string, reader io.Reader, contentType string) (*domainlistings.Listing, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if s.Photos == nil {
		return nil, errors.New("listings: photo storage unavailable")
	}
	listing, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := photoKey(listing.ID, filename)
	url, err := s.Photos.Upload(ctx, key, reader, contentType)
	if err != nil {
		return nil, err
	}
	listing.SetImageURL(url, time.Now())
	if err := s.Listings.Save(ctx, listing); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("listing photo attached", "listing_id", listing.ID, "url", url)
	}
	return listing, nil
}

func photoKey(id domainlistings.ListingID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "listings/" + string(id) + "/" + uuid.NewString() + ext
}

func (s *Service) ensureDependencies() error {
	if s.Listings == nil {
		return errors.New("listings: repository required")
	}
	return nil
}
