package listings

import (
	"errors"
	"strconv"
	"strings"
)

var ErrGuestsInvalid = errors.New("listings: guest count must be a positive number")

// ParseGuests converts a raw guest count into a search threshold. An empty
// value means no threshold; anything non-numeric or below 1 is rejected.
func ParseGuests(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	guests, err := strconv.Atoi(raw)
	if err != nil || guests < 1 {
		return 0, ErrGuestsInvalid
	}
	return guests, nil
}

// SearchParams describe the catalog filters. Both fields are optional; empty
// params match every listing.
type SearchParams struct {
	Location string
	Guests   int
}

// Normalized returns a sanitized copy of params.
func (p SearchParams) Normalized() SearchParams {
	normalized := p
	normalized.Location = strings.TrimSpace(normalized.Location)
	if normalized.Guests < 0 {
		normalized.Guests = 0
	}
	return normalized
}

// LocationTokens splits the free-text location on whitespace and commas. A
// listing matches when its address contains any one token.
func (p SearchParams) LocationTokens() []string {
	raw := strings.FieldsFunc(p.Location, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
	if len(raw) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Matches reports whether the listing satisfies the guest threshold and, when
// location tokens are present, contains at least one of them in its address.
func (p SearchParams) Matches(listing *Listing) bool {
	if listing == nil {
		return false
	}
	if p.Guests > 0 && listing.Guests < p.Guests {
		return false
	}
	tokens := p.LocationTokens()
	if len(tokens) == 0 {
		return true
	}
	address := strings.ToLower(listing.Address)
	for _, token := range tokens {
		if strings.Contains(address, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
