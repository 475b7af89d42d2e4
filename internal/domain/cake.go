package domain

import (
	"errors"
	"time"
)

const (
	MaxFillings      = 3
	MaxColors        = 2
	MaxTiers         = 3
	MaxCommentRunes  = 500
	MinLeadTimeDays  = 3
	FallbackBase     = 1000
	TierSurcharge    = 500
	FallbackFilling  = 100
)

var (
	ErrTooManyFillings = errors.New("at most 3 fillings")
	ErrTooManyColors   = errors.New("at most 2 colors")
	ErrBadTiers        = errors.New("tiers must be 1, 2 or 3")
	ErrDateTooSoon     = errors.New("date must be at least 3 days ahead")
	ErrCommentTooLong  = errors.New("comment longer than 500 characters")
)

// Sketch is an opaque attachment the customer uploads on the sketch step.
type Sketch struct {
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
	URL      string `json:"url,omitempty"`
}

// CakeConfig is the in-progress builder configuration. Empty string means
// the field is unset. Fillings and Colors keep selection order and never
// exceed their caps: toggles past the cap are rejected at the point of
// selection, not at submission.
type CakeConfig struct {
	Event      string   `json:"event"`
	Type       string   `json:"type"`
	Shape      string   `json:"shape"`
	Weight     string   `json:"weight"`
	Fillings   []string `json:"fillings"`
	Tiers      int      `json:"tiers"`
	Decoration string   `json:"decoration"`
	Coating    string   `json:"coating"`
	Colors     []string `json:"colors"`
	Date       string   `json:"date"` // YYYY-MM-DD, empty = unset
	Sketch     *Sketch  `json:"sketch,omitempty"`
	Comment    string   `json:"comment"`
}

// NewCakeConfig returns the empty configuration the builder opens with.
func NewCakeConfig() CakeConfig {
	return CakeConfig{Fillings: []string{}, Tiers: 1, Colors: []string{}}
}

// MinEventDate is the earliest date a custom order may be placed for.
// Orders inside the lead window are taken by phone only.
func MinEventDate(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, MinLeadTimeDays).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// ValidEventDate reports whether s is empty or a calendar date no earlier
// than now + lead time.
func ValidEventDate(s string, now time.Time) bool {
	if s == "" {
		return true
	}
	t, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return false
	}
	return !t.Before(MinEventDate(now))
}
