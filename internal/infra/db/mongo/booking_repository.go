package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "stayfinder/internal/domain/booking"
	"stayfinder/internal/domain/listings"
	domainuser "stayfinder/internal/domain/user"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// ByUser returns the user's bookings newest first.
func (r *BookingRepository) ByUser(ctx context.Context, userID domainuser.ID) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": string(userID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toAggregate())
	}
	return result, cursor.Err()
}

func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	doc := newBookingDocument(booking)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainbooking.ErrNotFound
	}
	return nil
}

type bookingDocument struct {
	ID           string `bson:"_id"`
	ListingID    string `bson:"listing_id"`
	UserID       string `bson:"user_id"`
	CheckIn      int64  `bson:"check_in"`
	CheckOut     int64  `bson:"check_out"`
	CheckInTime  string `bson:"check_in_time"`
	CheckOutTime string `bson:"check_out_time"`
	Guests       int    `bson:"guests"`
	TotalPrice   int64  `bson:"total_price"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:           string(b.ID),
		ListingID:    string(b.ListingID),
		UserID:       string(b.UserID),
		CheckIn:      b.CheckIn.UnixMilli(),
		CheckOut:     b.CheckOut.UnixMilli(),
		CheckInTime:  b.CheckInTime,
		CheckOutTime: b.CheckOutTime,
		Guests:       b.Guests,
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt.UnixMilli(),
		UpdatedAt:    b.UpdatedAt.UnixMilli(),
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:           domainbooking.BookingID(d.ID),
		ListingID:    listings.ListingID(d.ListingID),
		UserID:       domainuser.ID(d.UserID),
		CheckIn:      timestampToTime(d.CheckIn),
		CheckOut:     timestampToTime(d.CheckOut),
		CheckInTime:  d.CheckInTime,
		CheckOutTime: d.CheckOutTime,
		Guests:       d.Guests,
		TotalPrice:   d.TotalPrice,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
	}
}
