package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayfinder/internal/domain/listings"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("listings")}
}

func (r *ListingRepository) ByID(ctx context.Context, id listings.ListingID) (*listings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, listings.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) All(ctx context.Context) ([]*listings.Listing, error) {
	return r.find(ctx, bson.M{})
}

// Search translates the params into a single filter: a capacity threshold
// ANDed with an OR of case-insensitive address matches, one per location
// token.
func (r *ListingRepository) Search(ctx context.Context, params listings.SearchParams) ([]*listings.Listing, error) {
	params = params.Normalized()
	var conditions []bson.M
	if params.Guests > 0 {
		conditions = append(conditions, bson.M{"guests": bson.M{"$gte": params.Guests}})
	}
	if tokens := params.LocationTokens(); len(tokens) > 0 {
		addressFilters := make([]bson.M, 0, len(tokens))
		for _, token := range tokens {
			addressFilters = append(addressFilters, bson.M{"address": bson.M{
				"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(token), Options: "i"},
			}})
		}
		conditions = append(conditions, bson.M{"$or": addressFilters})
	}
	filter := bson.M{}
	if len(conditions) > 0 {
		filter["$and"] = conditions
	}
	return r.find(ctx, filter)
}

func (r *ListingRepository) Save(ctx context.Context, listing *listings.Listing) error {
	doc := newListingDocument(listing)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*listings.Listing, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*listings.Listing
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toAggregate())
	}
	return result, cursor.Err()
}

type listingDocument struct {
	ID            string   `bson:"_id"`
	Host          string   `bson:"host"`
	Title         string   `bson:"title"`
	Description   string   `bson:"description"`
	Address       string   `bson:"address"`
	PricePerNight int64    `bson:"price_per_night"`
	ImageURL      string   `bson:"image_url"`
	Guests        int      `bson:"guests"`
	Bedrooms      int      `bson:"bedrooms"`
	Bathrooms     int      `bson:"bathrooms"`
	Amenities     []string `bson:"amenities"`
	CreatedAt     int64    `bson:"created_at"`
	UpdatedAt     int64    `bson:"updated_at"`
}

func newListingDocument(l *listings.Listing) listingDocument {
	return listingDocument{
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
		Amenities:     l.Amenities,
		CreatedAt:     l.CreatedAt.UnixMilli(),
		UpdatedAt:     l.UpdatedAt.UnixMilli(),
	}
}

func (d listingDocument) toAggregate() *listings.Listing {
	return &listings.Listing{
		ID:            listings.ListingID(d.ID),
		Host:          listings.HostID(d.Host),
		Title:         d.Title,
		Description:   d.Description,
		Address:       d.Address,
		PricePerNight: d.PricePerNight,
		ImageURL:      d.ImageURL,
		Guests:        d.Guests,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Amenities:     d.Amenities,
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
	}
}
