package category

import (
	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/models"
)

// visualsKey is the local-store key holding the category id → visual map.
const visualsKey = "categoryVisuals"

// VisualStore persists the presentation-only category metadata the backend
// does not model. A saved visual survives server-side re-fetches of the
// category until explicitly overwritten or the category is deleted.
type VisualStore struct {
	store *localstore.Store
}

// NewVisualStore constructs a VisualStore over the local store.
func NewVisualStore(store *localstore.Store) *VisualStore {
	return &VisualStore{store: store}
}

// All returns the full overlay map. A missing or unreadable map is empty.
func (v *VisualStore) All() map[string]models.Visual {
	visuals := map[string]models.Visual{}
	if _, err := v.store.GetJSON(visualsKey, &visuals); err != nil {
		return map[string]models.Visual{}
	}
	return visuals
}

// Get returns the visual saved for a category id.
func (v *VisualStore) Get(id string) (models.Visual, bool) {
	visual, ok := v.All()[id]
	return visual, ok
}

// Save stores a visual under a category id.
func (v *VisualStore) Save(id string, visual models.Visual) error {
	visuals := v.All()
	visuals[id] = visual
	return v.store.SetJSON(visualsKey, visuals)
}

// Remove drops the visual for a category id. Missing ids are not an error.
func (v *VisualStore) Remove(id string) error {
	visuals := v.All()
	if _, ok := visuals[id]; !ok {
		return nil
	}
	delete(visuals, id)
	return v.store.SetJSON(visualsKey, visuals)
}
