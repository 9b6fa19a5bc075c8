package pricing

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateBreakdown(t *testing.T) {
	quote, err := Calculate(1000, date(2026, 3, 1), date(2026, 3, 4))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if quote.Nights != 3 {
		t.Fatalf("nights = %d, want 3", quote.Nights)
	}
	if quote.Subtotal != 3000 {
		t.Fatalf("subtotal = %d, want 3000", quote.Subtotal)
	}
	if quote.ServiceFee != 360 {
		t.Fatalf("service fee = %d, want 360", quote.ServiceFee)
	}
	if quote.Taxes != 540 {
		t.Fatalf("taxes = %d, want 540", quote.Taxes)
	}
	if quote.Total != 3900 {
		t.Fatalf("total = %d, want 3900", quote.Total)
	}
}

func TestCalculateRoundsComponentsIndependently(t *testing.T) {
	// subtotal 1015: fee 121.8 -> 122, tax 182.7 -> 183. Rounding the summed
	// 304.5 instead would give a different total.
	quote, err := Calculate(1015, date(2026, 3, 1), date(2026, 3, 2))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if quote.ServiceFee != 122 || quote.Taxes != 183 {
		t.Fatalf("fee/tax = %d/%d, want 122/183", quote.ServiceFee, quote.Taxes)
	}
	if quote.Total != 1015+122+183 {
		t.Fatalf("total = %d, want %d", quote.Total, 1015+122+183)
	}
}

func TestCalculatePartialDayCountsAsNight(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)
	quote, err := Calculate(500, checkIn, checkOut)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if quote.Nights != 3 {
		t.Fatalf("nights = %d, want 3 (ceiling of 2.25 days)", quote.Nights)
	}
}

func TestCalculateRejectsUnorderedRange(t *testing.T) {
	if _, err := Calculate(1000, date(2026, 3, 4), date(2026, 3, 1)); !errors.Is(err, ErrRangeInvalid) {
		t.Fatalf("err = %v, want ErrRangeInvalid", err)
	}
	if _, err := Calculate(1000, date(2026, 3, 1), date(2026, 3, 1)); !errors.Is(err, ErrRangeInvalid) {
		t.Fatalf("same-day range: err = %v, want ErrRangeInvalid", err)
	}
}

func TestCalculateRejectsNonPositiveRate(t *testing.T) {
	if _, err := Calculate(0, date(2026, 3, 1), date(2026, 3, 2)); !errors.Is(err, ErrRateInvalid) {
		t.Fatalf("err = %v, want ErrRateInvalid", err)
	}
}
