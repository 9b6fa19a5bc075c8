package listings

import "time"

type ListingCreated struct {
	ListingID ListingID
	Host      HostID
	Title     string
	At        time.Time
}

func (e ListingCreated) EventName() string     { return "listing.created" }
func (e ListingCreated) AggregateID() string   { return string(e.ListingID) }
func (e ListingCreated) OccurredAt() time.Time { return e.At }
