package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"fridge-service/internal/domain"

	"github.com/google/uuid"
)

const snapshotVersion = 1

type snapshot struct {
	Version int          `json:"version"`
	Items   []itemRecord `json:"items"`
}

type itemRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Unit      string    `json:"unit"`
	Category  string    `json:"category"`
	AddedDate time.Time `json:"added_date"`
	IsDeleted bool      `json:"is_deleted"`
}

// EncodeCollection serializes every item field
func EncodeCollection(items domain.Collection) ([]byte, error) {
	snap := snapshot{
		Version: snapshotVersion,
		Items:   make([]itemRecord, 0, len(items)),
	}
	for _, item := range items {
		snap.Items = append(snap.Items, itemRecord{
			ID:        item.ID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Category:  string(item.Category),
			AddedDate: item.AddedDate,
			IsDeleted: item.IsDeleted,
		})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeCollection is the inverse of EncodeCollection. Any data it cannot
// interpret yields ErrCorruptSnapshot.
func DecodeCollection(data []byte) (domain.Collection, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}

	items := make(domain.Collection, 0, len(snap.Items))
	for _, rec := range snap.Items {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: item id %q: %v", ErrCorruptSnapshot, rec.ID, err)
		}
		items = append(items, domain.Item{
			ID:        id,
			Name:      rec.Name,
			Quantity:  rec.Quantity,
			Unit:      rec.Unit,
			Category:  domain.Category(rec.Category),
			AddedDate: rec.AddedDate,
			IsDeleted: rec.IsDeleted,
		})
	}
	return items, nil
}
