package pricing

import (
	"errors"
	"math"
	"time"
)

const (
	serviceFeeRate = 0.12
	taxRate        = 0.18
)

var (
	ErrRateInvalid  = errors.New("pricing: nightly rate must be positive")
	ErrRangeInvalid = errors.New("pricing: check-out must be after check-in")
)

// Quote is the deterministic cost breakdown for a stay. All amounts are whole
// currency units.
type Quote struct {
	Nights     int   `json:"nights"`
	Nightly    int64 `json:"pricePerNight"`
	Subtotal   int64 `json:"subtotal"`
	ServiceFee int64 `json:"serviceFee"`
	Taxes      int64 `json:"taxes"`
	Total      int64 `json:"total"`
}

// Calculate prices a stay: nights are the ceiling of the range in days, the
// service fee and taxes are each rounded half-up against the subtotal before
// summing. Rounding the components instead of the total is load-bearing:
// clients reproduce the same breakdown line by line.
func Calculate(nightlyRate int64, checkIn, checkOut time.Time) (Quote, error) {
	if nightlyRate <= 0 {
		return Quote{}, ErrRateInvalid
	}
	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		return Quote{}, ErrRangeInvalid
	}
	subtotal := int64(nights) * nightlyRate
	fee := roundHalfUp(float64(subtotal) * serviceFeeRate)
	taxes := roundHalfUp(float64(subtotal) * taxRate)
	return Quote{
		Nights:     nights,
		Nightly:    nightlyRate,
		Subtotal:   subtotal,
		ServiceFee: fee,
		Taxes:      taxes,
		Total:      subtotal + fee + taxes,
	}, nil
}

// Nights returns the ceiling of the range length in whole days, or 0 when the
// range is not ordered.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
