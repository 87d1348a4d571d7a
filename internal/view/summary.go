package view

import (
	"time"

	"fridge-service/internal/domain"
	"fridge-service/internal/freshness"
)

// Summary aggregates the active items of a collection
type Summary struct {
	Active      int
	Trashed     int
	ByTier      map[freshness.Tier]int
	ByCategory  map[domain.Category]int
	OldestItems []ItemView
}

// Summarize counts active items per freshness tier and category. OldestItems
// holds the active items in the OLD tier, longest stored first.
func Summarize(items domain.Collection, now time.Time) Summary {
	s := Summary{
		ByTier: map[freshness.Tier]int{
			freshness.Fresh:  0,
			freshness.Medium: 0,
			freshness.Old:    0,
		},
		ByCategory:  make(map[domain.Category]int, len(domain.Categories)),
		OldestItems: []ItemView{},
	}
	for _, c := range domain.Categories {
		s.ByCategory[c] = 0
	}

	active := Project(items, Filter{Category: domain.CategoryAll})
	s.Active = len(active)
	s.Trashed = len(Project(items, Filter{Trash: true}))

	// walk oldest first so OldestItems comes out longest stored first
	for i := len(active) - 1; i >= 0; i-- {
		v := Present(active[i], now)
		s.ByTier[v.Freshness]++
		s.ByCategory[v.Category]++
		if v.Freshness == freshness.Old {
			s.OldestItems = append(s.OldestItems, v)
		}
	}
	return s
}
