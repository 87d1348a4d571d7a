// Package view derives what the fridge list shows from a snapshot of the
// collection. Everything here is a pure function of its arguments.
package view

import (
	"sort"
	"strings"
	"time"

	"fridge-service/internal/domain"
	"fridge-service/internal/freshness"

	"github.com/google/uuid"
)

// Filter selects which items a projection shows
type Filter struct {
	Category domain.Category // domain.CategoryAll keeps every category
	Search   string
	Trash    bool
}

// Project returns the visible items, most recently added first.
//
// In trash mode only soft-deleted items are returned and the category and
// search filters are ignored.
func Project(items domain.Collection, f Filter) []domain.Item {
	term := strings.ToLower(f.Search)

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.IsDeleted != f.Trash {
			continue
		}
		if !f.Trash {
			if f.Category != domain.CategoryAll && f.Category != "" && item.Category != f.Category {
				continue
			}
			if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
				continue
			}
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedDate.After(out[j].AddedDate)
	})
	return out
}

// ItemView is an item decorated with its derived freshness
type ItemView struct {
	ID         uuid.UUID
	Name       string
	Quantity   int
	Unit       string
	Category   domain.Category
	AddedDate  time.Time
	IsDeleted  bool
	DaysStored int
	Freshness  freshness.Tier
}

// Present decorates one item relative to now
func Present(item domain.Item, now time.Time) ItemView {
	days := freshness.DaysStored(item.AddedDate, now)
	return ItemView{
		ID:         item.ID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		Category:   item.Category,
		AddedDate:  item.AddedDate,
		IsDeleted:  item.IsDeleted,
		DaysStored: days,
		Freshness:  freshness.Classify(days),
	}
}

// PresentAll decorates a projected list, keeping its order
func PresentAll(items []domain.Item, now time.Time) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, Present(item, now))
	}
	return out
}
