package inventory

import (
	"time"

	"fridge-service/internal/domain"

	"github.com/google/uuid"
)

var seedNamespace = uuid.MustParse("6f1c2a9e-5b3d-4e7a-9c1f-0d8e4b2a7c55")

type seedEntry struct {
	name     string
	quantity int
	unit     string
	category domain.Category
	daysAgo  int
}

var seedEntries = []seedEntry{
	{"全脂牛奶", 1, "瓶", domain.CategoryOther, 1},
	{"上海青", 2, "把", domain.CategoryVegetable, 0},
	{"牛排", 2, "块", domain.CategoryMeat, 4},
	{"三文鱼", 1, "份", domain.CategorySeafood, 8},
}

// SeedCollection returns the demo fridge used on first start. Ids are derived
// from the item names so the set is the same on every run; dates are relative
// to now.
func SeedCollection(now time.Time) domain.Collection {
	items := make(domain.Collection, 0, len(seedEntries))
	for _, e := range seedEntries {
		items = append(items, domain.Item{
			ID:        uuid.NewSHA1(seedNamespace, []byte(e.name)),
			Name:      e.name,
			Quantity:  e.quantity,
			Unit:      e.unit,
			Category:  e.category,
			AddedDate: now.AddDate(0, 0, -e.daysAgo),
		})
	}
	return items
}
