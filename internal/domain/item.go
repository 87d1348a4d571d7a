package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of food categories an item can belong to
type Category string

const (
	CategoryMeat      Category = "MEAT"
	CategoryVegetable Category = "VEGETABLE"
	CategoryFruit     Category = "FRUIT"
	CategorySeafood   Category = "SEAFOOD"
	CategoryOther     Category = "OTHER"

	// CategoryAll is only meaningful as a filter value, never on an item
	CategoryAll Category = "ALL"
)

// Categories lists every category an item may carry, in display order
var Categories = []Category{
	CategoryMeat,
	CategoryVegetable,
	CategoryFruit,
	CategorySeafood,
	CategoryOther,
}

// Valid reports whether c is one of the item categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ParseCategoryFilter is like ParseCategory but also accepts ALL (or an empty string)
func ParseCategoryFilter(s string) (Category, error) {
	if strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), string(CategoryAll)) {
		return CategoryAll, nil
	}
	return ParseCategory(s)
}

// Item is a single stored food item in the fridge
type Item struct {
	ID        uuid.UUID
	Name      string
	Quantity  int
	Unit      string
	Category  Category
	AddedDate time.Time
	IsDeleted bool
}

// Draft carries the caller supplied fields of a new item
type Draft struct {
	Name     string
	Quantity int
	Unit     string
	Category Category
}

// NewItem builds an active item from a draft. The draft must satisfy the same
// rules Validate applies to stored items.
func NewItem(id uuid.UUID, draft Draft, addedAt time.Time) (*Item, error) {
	item := &Item{
		ID:        id,
		Name:      draft.Name,
		Quantity:  draft.Quantity,
		Unit:      draft.Unit,
		Category:  draft.Category,
		AddedDate: addedAt,
		IsDeleted: false,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustQuantity adds delta to the quantity. A result of zero or less is
// rejected and the item is left untouched.
func (i *Item) AdjustQuantity(delta int) error {
	newQuantity := i.Quantity + delta
	if newQuantity <= 0 {
		return ErrQuantityFloor
	}
	i.Quantity = newQuantity
	return nil
}

// MoveToTrash marks the item as soft-deleted
func (i *Item) MoveToTrash() {
	i.IsDeleted = true
}

// Restore brings a trashed item back to the active list
func (i *Item) Restore() {
	i.IsDeleted = false
}

// Validate checks the invariants every stored item must satisfy
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrInvalidCollection
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrInvalidName
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Collection is the full set of items. Storage order carries no meaning.
type Collection []Item

// Clone returns an independent copy of the collection
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Validate checks every item and the uniqueness of ids
func (c Collection) Validate() error {
	seen := make(map[uuid.UUID]struct{}, len(c))
	for idx := range c {
		if err := c[idx].Validate(); err != nil {
			return err
		}
		if _, dup := seen[c[idx].ID]; dup {
			return ErrDuplicateID
		}
		seen[c[idx].ID] = struct{}{}
	}
	return nil
}

// IndexOf returns the position of the item with id, or -1
func (c Collection) IndexOf(id uuid.UUID) int {
	for idx := range c {
		if c[idx].ID == id {
			return idx
		}
	}
	return -1
}

// Domain errors
var (
	ErrInvalidQuantity   = &DomainError{Message: "quantity must be at least 1"}
	ErrQuantityFloor     = &DomainError{Message: "quantity cannot drop to zero or below"}
	ErrInvalidCategory   = &DomainError{Message: "unknown category"}
	ErrInvalidName       = &DomainError{Message: "name must not be empty"}
	ErrItemNotFound      = &DomainError{Message: "item not found"}
	ErrDuplicateID       = &DomainError{Message: "duplicate item id"}
	ErrInvalidCollection = &DomainError{Message: "invalid item collection"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
