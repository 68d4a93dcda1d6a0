package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
)

// Category is one of the fixed monthly spending buckets.
type Category string

const (
	Housing   Category = "housing"
	Transport Category = "transport"
	Leisure   Category = "leisure"
	Education Category = "education"
)

// Categories lists every category in display order.
var Categories = []Category{Housing, Transport, Leisure, Education}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", NewConfigurationError("spending", "unknown category %q", s)
}

// SpendingProfile holds fixed monthly amounts per category. Build it with
// NewSpendingProfile so amounts are checked once.
type SpendingProfile struct {
	amounts map[Category]float64
}

// NewSpendingProfile validates amounts; missing categories count as zero.
func NewSpendingProfile(amounts map[Category]float64) (SpendingProfile, error) {
	p := SpendingProfile{amounts: make(map[Category]float64, len(Categories))}
	for c, v := range amounts {
		if _, err := ParseCategory(string(c)); err != nil {
			return SpendingProfile{}, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SpendingProfile{}, NewConfigurationError("spending."+string(c), "must be a finite number")
		}
		if v < 0 {
			return SpendingProfile{}, NewConfigurationError("spending."+string(c), "cannot be negative, got %.2f", v)
		}
		p.amounts[c] = v
	}
	return p, nil
}

// MustSpendingProfile panics on invalid input. Intended for literals in tests and presets.
func MustSpendingProfile(amounts map[Category]float64) SpendingProfile {
	p, err := NewSpendingProfile(amounts)
	if err != nil {
		panic(fmt.Sprintf("invalid spending profile: %v", err))
	}
	return p
}

// Amount returns the monthly amount for c.
func (p SpendingProfile) Amount(c Category) float64 { return p.amounts[c] }

// Total sums all categories.
func (p SpendingProfile) Total() float64 {
	var total float64
	for _, c := range Categories {
		total += p.amounts[c]
	}
	return total
}

// Map returns a copy keyed by category.
func (p SpendingProfile) Map() map[Category]float64 {
	out := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		out[c] = p.amounts[c]
	}
	return out
}

// MarshalJSON renders the profile as a category-keyed object.
func (p SpendingProfile) MarshalJSON() ([]byte, error) { return json.Marshal(p.Map()) }
