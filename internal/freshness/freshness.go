// Package freshness derives how long an item has been stored and which
// freshness tier that places it in.
package freshness

import "time"

// Tier is a coarse freshness bucket
type Tier string

const (
	Fresh  Tier = "FRESH"
	Medium Tier = "MEDIUM"
	Old    Tier = "OLD"
)

// Upper bounds (inclusive) of the lower tiers
const (
	FreshMaxDays  = 3
	MediumMaxDays = 7
)

const day = 24 * time.Hour

// DaysStored returns the whole days between added and now. The difference is
// absolute so clock skew never yields a negative count.
func DaysStored(added, now time.Time) int {
	elapsed := now.Sub(added)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(elapsed / day)
}

// Classify maps a day count onto a tier
func Classify(days int) Tier {
	switch {
	case days <= FreshMaxDays:
		return Fresh
	case days <= MediumMaxDays:
		return Medium
	default:
		return Old
	}
}
