package store

import (
	"sort"
	"strings"

	"github.com/stockdeck/stockdeck/internal/models"
)

// Stats are the stock-level counts over the unfiltered collection.
type Stats struct {
	Total      int `json:"total"`
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// Products returns a copy of the unfiltered collection.
func (s *ProductStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Total returns the backend-reported total for the collection.
func (s *ProductStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Loading reports whether a fetch is in flight.
func (s *ProductStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last action's error message, or "".
func (s *ProductStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Page returns the current 1-based view page.
func (s *ProductStore) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// SelectedIDs returns the multi-select set in stable order.
func (s *ProductStore) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FilteredProducts applies, in order: case-insensitive substring search over
// name/sku/category, exact category-id match, exact status match.
func (s *ProductStore) FilteredProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filteredLocked()
}

func (s *ProductStore) filteredLocked() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	search := strings.ToLower(s.search)
	for _, p := range s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		if s.categoryID != "" && s.categoryID != AllCategories && p.CategoryID != s.categoryID {
			continue
		}
		if s.status != "" && s.status != AllStatus && string(p.Status) != s.status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PaginatedProducts slices the filtered result for the current page.
func (s *ProductStore) PaginatedProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.filteredLocked()
	start := (s.currentPage - 1) * s.itemsPerPage
	if start >= len(filtered) {
		return []models.Product{}
	}
	end := start + s.itemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// GetStats counts the three status buckets over the unfiltered collection.
func (s *ProductStore) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.products)}
	for _, p := range s.products {
		switch p.Status {
		case models.StatusInStock:
			stats.InStock++
		case models.StatusLowStock:
			stats.LowStock++
		case models.StatusOutOfStock:
			stats.OutOfStock++
		}
	}
	return stats
}
