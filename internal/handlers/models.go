package handlers

import (
	"time"

	"fridge-service/internal/view"
)

// CreateItemRequest is the body of POST /items
type CreateItemRequest struct {
	Name string `json:"name" binding:"required" example:"牛排"`

	// Must be at least 1
	Quantity int `json:"quantity" binding:"required,min=1" example:"2"`

	// Free text, may be empty
	Unit string `json:"unit" example:"块"`

	// MEAT, VEGETABLE, FRUIT, SEAFOOD or OTHER (case-insensitive)
	Category string `json:"category" binding:"required" example:"MEAT"`
}

// AdjustQuantityRequest is the body of POST /items/:id/adjust. Delta may be
// negative; a pointer so that an explicit 0 passes the required check.
type AdjustQuantityRequest struct {
	Delta *int `json:"delta" binding:"required" example:"-1"`
}

// ItemResponse is an item plus its derived freshness
type ItemResponse struct {
	ID         string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	Category   string `json:"category"`
	AddedDate  string `json:"added_date" example:"2024-06-10T09:30:00Z"`
	IsDeleted  bool   `json:"is_deleted"`
	DaysStored int    `json:"days_stored"`
	Freshness  string `json:"freshness" example:"FRESH"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

type AdjustQuantityResponse struct {
	// false when the change would have left the quantity at zero or below, or
	// the item is in the trash
	Applied bool         `json:"applied"`
	Item    ItemResponse `json:"item"`
}

type PurgeResponse struct {
	ID      string `json:"id"`
	Message string `json:"message" example:"item purged"`
}

type SummaryResponse struct {
	Active      int            `json:"active"`
	Trashed     int            `json:"trashed"`
	ByFreshness map[string]int `json:"by_freshness"`
	ByCategory  map[string]int `json:"by_category"`
	OldestItems []ItemResponse `json:"oldest_items"`
}

type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	Service       string `json:"service" example:"fridge-service"`
	Items         int    `json:"items"`
	LastSavedAt   string `json:"last_saved_at,omitempty"`
	LastSaveError string `json:"last_save_error,omitempty"`
}

func toItemResponse(v view.ItemView) ItemResponse {
	return ItemResponse{
		ID:         v.ID.String(),
		Name:       v.Name,
		Quantity:   v.Quantity,
		Unit:       v.Unit,
		Category:   string(v.Category),
		AddedDate:  v.AddedDate.Format(time.RFC3339),
		IsDeleted:  v.IsDeleted,
		DaysStored: v.DaysStored,
		Freshness:  string(v.Freshness),
	}
}

func toItemResponses(views []view.ItemView) []ItemResponse {
	out := make([]ItemResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toItemResponse(v))
	}
	return out
}

func toSummaryResponse(s view.Summary) SummaryResponse {
	resp := SummaryResponse{
		Active:      s.Active,
		Trashed:     s.Trashed,
		ByFreshness: make(map[string]int, len(s.ByTier)),
		ByCategory:  make(map[string]int, len(s.ByCategory)),
		OldestItems: toItemResponses(s.OldestItems),
	}
	for tier, n := range s.ByTier {
		resp.ByFreshness[string(tier)] = n
	}
	for category, n := range s.ByCategory {
		resp.ByCategory[string(category)] = n
	}
	return resp
}
