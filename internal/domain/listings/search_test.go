package listings

import "testing"

func testListing(address string, guests int) *Listing {
	return &Listing{
		ID:            "l1",
		Title:         "test",
		Address:       address,
		PricePerNight: 100,
		Guests:        guests,
	}
}

func TestLocationTokens(t *testing.T) {
	cases := []struct {
		location string
		want     []string
	}{
		{"", nil},
		{"   ", nil},
		{"Goa", []string{"Goa"}},
		{"Mumbai, Maharashtra", []string{"Mumbai", "Maharashtra"}},
		{"  new   delhi ", []string{"new", "delhi"}},
		{",,,", nil},
	}
	for _, tc := range cases {
		got := SearchParams{Location: tc.location}.LocationTokens()
		if len(got) != len(tc.want) {
			t.Fatalf("LocationTokens(%q) = %v, want %v", tc.location, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("LocationTokens(%q)[%d] = %q, want %q", tc.location, i, got[i], tc.want[i])
			}
		}
	}
}

func TestParseGuests(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"1", 1, false},
		{" 4 ", 4, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"abc", 0, true},
		{"2.5", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseGuests(tc.raw)
		if tc.wantErr {
			if err != ErrGuestsInvalid {
				t.Fatalf("ParseGuests(%q) error = %v, want ErrGuestsInvalid", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseGuests(%q) error = %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseGuests(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestMatchesGuestThreshold(t *testing.T) {
	params := SearchParams{Guests: 4}
	if params.Matches(testListing("Goa", 2)) {
		t.Fatalf("listing for 2 guests must not match a 4-guest search")
	}
	if !params.Matches(testListing("Goa", 4)) {
		t.Fatalf("listing for 4 guests must match a 4-guest search")
	}
	if !params.Matches(testListing("Goa", 6)) {
		t.Fatalf("listing for 6 guests must match a 4-guest search")
	}
}

func TestMatchesAnyLocationToken(t *testing.T) {
	listing := testListing("12 Beach Road, Calangute, Goa", 2)
	cases := []struct {
		location string
		want     bool
	}{
		{"goa", true},
		{"GOA", true},
		{"Mumbai Goa", true}, // OR across tokens
		{"calangute", true},
		{"Mumbai", false},
		{"", true},
	}
	for _, tc := range cases {
		got := SearchParams{Location: tc.location}.Matches(listing)
		if got != tc.want {
			t.Fatalf("Matches(location=%q) = %v, want %v", tc.location, got, tc.want)
		}
	}
}

func TestMatchesCombinesGuestAndLocation(t *testing.T) {
	listing := testListing("Baner, Pune", 3)
	if !(SearchParams{Location: "pune", Guests: 2}).Matches(listing) {
		t.Fatalf("both predicates satisfied, expected match")
	}
	if (SearchParams{Location: "pune", Guests: 5}).Matches(listing) {
		t.Fatalf("guest predicate failed, expected no match")
	}
	if (SearchParams{Location: "delhi", Guests: 2}).Matches(listing) {
		t.Fatalf("location predicate failed, expected no match")
	}
}
