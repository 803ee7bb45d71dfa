// Package filter selects the events visible for a year and a set of enabled
// categories.
package filter

import (
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
)

// Selection is the set of enabled categories. The zero value enables nothing.
type Selection uint8

// All enables every category.
func All() Selection {
	var s Selection
	for _, c := range domain.Categories() {
		s = s.With(c)
	}
	return s
}

// Of returns a selection enabling exactly cats.
func Of(cats ...domain.Category) Selection {
	var s Selection
	for _, c := range cats {
		s = s.With(c)
	}
	return s
}

// With returns s with c enabled.
func (s Selection) With(c domain.Category) Selection {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c)
}

// Without returns s with c disabled.
func (s Selection) Without(c domain.Category) Selection {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << uint(c))
}

// Set enables or disables c.
func (s Selection) Set(c domain.Category, on bool) Selection {
	if on {
		return s.With(c)
	}
	return s.Without(c)
}

// Has reports whether c is enabled.
func (s Selection) Has(c domain.Category) bool {
	return c.Valid() && s&(1<<uint(c)) != 0
}

// Categories lists the enabled categories in enum order.
func (s Selection) Categories() []domain.Category {
	var out []domain.Category
	for _, c := range domain.Categories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Selection) String() string {
	cats := s.Categories()
	slugs := make([]string, len(cats))
	for i, c := range cats {
		slugs[i] = c.Slug()
	}
	return "{" + strings.Join(slugs, ",") + "}"
}

// Source is the read side of the event store.
type Source interface {
	Events(c domain.Category) ([]domain.Event, bool)
}

// ByYear returns the events whose date falls in year, in input order.
// Events with a malformed date are never selected.
func ByYear(events []domain.Event, year int) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if y, ok := ev.Year(); ok && y == year {
			out = append(out, ev)
		}
	}
	return out
}

// Apply unions the enabled categories that src has available and keeps the
// events of year. The result is ordered by category, then by load order, so it
// does not depend on the order the categories were toggled in.
func Apply(src Source, sel Selection, year int) []domain.Event {
	var out []domain.Event
	for _, c := range sel.Categories() {
		events, ok := src.Events(c)
		if !ok {
			continue
		}
		out = append(out, ByYear(events, year)...)
	}
	return out
}
