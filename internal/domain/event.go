package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidEvent marks an event that could not be constructed because one of
// its numeric fields is not a finite number or its severity is negative.
var ErrInvalidEvent = errors.New("invalid event")

// ConstructionError describes why NewEvent refused its arguments.
type ConstructionError struct {
	Severity  float64
	Longitude float64
	Latitude  float64
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("bad parameters: severity=%v lon=%v lat=%v", e.Severity, e.Longitude, e.Latitude)
}

// Is implements errors.Is support.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrInvalidEvent
}

// Event is one normalized disaster occurrence ready for filtering and rendering.
// Severity is the scaled marker radius, not the raw magnitude.
type Event struct {
	ID        string   `json:"id" yaml:"id"`
	Category  Category `json:"category" yaml:"category"`
	Color     string   `json:"color" yaml:"color"`
	Date      string   `json:"date" yaml:"date"`
	Time      string   `json:"time,omitempty" yaml:"time,omitempty"`
	Severity  float64  `json:"severity" yaml:"severity"`
	Longitude float64  `json:"longitude" yaml:"longitude"`
	Latitude  float64  `json:"latitude" yaml:"latitude"`
	Source    string   `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewEvent builds an Event for category c. It fails with a *ConstructionError
// when severity, longitude or latitude is NaN or infinite, or severity < 0.
func NewEvent(c Category, date, clock string, severity, lon, lat float64) (Event, error) {
	if !c.Valid() {
		return Event{}, fmt.Errorf("new event: %w", ErrUnknownCategory)
	}
	if !finite(severity) || !finite(lon) || !finite(lat) || severity < 0 {
		return Event{}, &ConstructionError{Severity: severity, Longitude: lon, Latitude: lat}
	}
	return Event{
		ID:        generateID(c, date, clock, severity, lon, lat),
		Category:  c,
		Color:     c.Color(),
		Date:      date,
		Time:      clock,
		Severity:  severity,
		Longitude: lon,
		Latitude:  lat,
	}, nil
}

// Year returns the year component of the event's canonical date.
func (e Event) Year() (int, bool) {
	return YearOf(e.Date)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// generateID produces a deterministic ID from the event's key fields so the
// same snapshot row always exports under the same key.
func generateID(c Category, date, clock string, severity, lon, lat float64) string {
	input := fmt.Sprintf("%s|%s|%s|%.4f|%.4f|%g", c.Slug(), date, clock, lon, lat, severity)
	hash := sha256.Sum256([]byte(input))
	return c.Slug() + "-" + hex.EncodeToString(hash[:8])
}
