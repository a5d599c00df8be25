// Package entity contains the core business objects of the project.
package entity

import (
	"regexp"
	"slices"

	"github.com/pkg/errors"
)

// timeOfDayPattern accepts 24h clock values such as "07:30" or "23:05".
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Schedule is a feeding rule attached to a device. Weekday matching is
// order-insensitive; Days is kept sorted for display.
type Schedule struct {
	ID           string  `json:"id"` // Unique within the owning device's schedule list.
	Days         []int   `json:"days"`
	Time         string  `json:"time"` // 24h "HH:MM".
	PortionGrams float64 `json:"portion_grams"`
	Enabled      bool    `json:"enabled"`
}

// NormalizeDays deduplicates and sorts the weekday set.
func (s *Schedule) NormalizeDays() {
	slices.Sort(s.Days)
	s.Days = slices.Compact(s.Days)
}

// Validate checks the schedule invariants: a valid 24h time, weekday indices
// within 0-6 and a positive portion.
func (s *Schedule) Validate() error {
	if !timeOfDayPattern.MatchString(s.Time) {
		return errors.Errorf("invalid schedule time %q, want HH:MM", s.Time)
	}
	if len(s.Days) == 0 {
		return errors.New("schedule needs at least one weekday")
	}
	for _, day := range s.Days {
		if day < 0 || day > 6 {
			return errors.Errorf("invalid weekday index %d", day)
		}
	}
	if s.PortionGrams <= 0 {
		return errors.Errorf("portion must be positive, got %v", s.PortionGrams)
	}

	return nil
}
