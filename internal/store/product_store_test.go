package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/notify"
	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/store"
)

func writeEnvelope(w http.ResponseWriter, code int, status, message string, data any) {
	raw, _ := json.Marshal(data)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status":      status,
		"message":     message,
		"data":        json.RawMessage(raw),
		"status_code": code,
	})
}

func testStore(t *testing.T, handler http.Handler, pageSize int) *store.ProductStore {
	t.Helper()
	local, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { local.Close() })
	sessions := session.New(session.NewDurableScope(local), session.NewMemoryScope(0))

	ctx := context.Background()
	if _, err := sessions.Login(ctx, "tok", session.PersistenceSession); err != nil {
		t.Fatal(err)
	}
	if err := sessions.SetOrganizationID(ctx, "org-1"); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(&config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, sessions, "test")
	return store.New(client, &notify.NopNotifier{}, pageSize)
}

func record(id, name, categoryID, categoryName string, available int) models.ProductRecord {
	return models.ProductRecord{
		ID:                id,
		Name:              name,
		CategoryID:        categoryID,
		CategoryName:      categoryName,
		TotalQuantity:     available,
		AvailableQuantity: available,
	}
}

// listHandler serves the current records for the product list route and
// delegates everything else.
func listHandler(records *[]models.ProductRecord, fallback http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/v1/organizations/org-1/products" {
			writeEnvelope(w, 200, "success", "ok", api.ProductListData{
				Products: *records,
				Total:    len(*records),
			})
			return
		}
		if fallback != nil {
			fallback.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func TestFetchReplacesCollection(t *testing.T) {
	records := []models.ProductRecord{
		record("p1", "Drill", "c1", "Tools", 50),
		record("p2", "Nails", "c2", "Fasteners", 0),
	}
	s := testStore(t, listHandler(&records, nil), 20)

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	products := s.Products()
	if len(products) != 2 || s.Total() != 2 {
		t.Fatalf("got %d products, total %d", len(products), s.Total())
	}
	if products[1].Status != models.StatusOutOfStock {
		t.Errorf("p2 status = %q", products[1].Status)
	}
	if s.Loading() {
		t.Error("loading flag still set after fetch")
	}
}

func TestFilterComposition(t *testing.T) {
	records := []models.ProductRecord{
		record("p1", "Drill", "c1", "Tools", 50),
		record("p2", "Hammer", "c1", "Tools", 50),
		record("p3", "Drywall screws", "c2", "Fasteners", 50),
	}
	s := testStore(t, listHandler(&records, nil), 20)
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	s.SetSearch("drl")
	s.SetCategory(store.AllCategories)
	s.SetStatus(store.AllStatus)
	for _, p := range s.FilteredProducts() {
		name, sku, cat := p.Name, p.SKU, p.Category
		if !containsFold(name, "drl") && !containsFold(sku, "drl") && !containsFold(cat, "drl") {
			t.Errorf("product %q slipped through the search filter", p.Name)
		}
	}

	// Search then exact category narrows further.
	s.SetSearch("")
	s.SetCategory("c1")
	filtered := s.FilteredProducts()
	if len(filtered) != 2 {
		t.Fatalf("category filter: got %d, want 2", len(filtered))
	}

	// Status filter composes on top.
	s.SetStatus(string(models.StatusOutOfStock))
	if got := s.FilteredProducts(); len(got) != 0 {
		t.Fatalf("status filter: got %d, want 0", len(got))
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func TestPaginationSlice(t *testing.T) {
	var records []models.ProductRecord
	for i := 0; i < 25; i++ {
		records = append(records, record(fmt.Sprintf("p%02d", i), fmt.Sprintf("Item %02d", i), "c1", "Misc", 50))
	}
	s := testStore(t, listHandler(&records, nil), 10)
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	s.SetPage(1)
	page := s.PaginatedProducts()
	if len(page) != 10 || page[0].ID != "p00" || page[9].ID != "p09" {
		t.Fatalf("page 1 = %d items, first %s", len(page), page[0].ID)
	}

	s.SetPage(3)
	page = s.PaginatedProducts()
	if len(page) != 5 || page[0].ID != "p20" || page[4].ID != "p24" {
		t.Fatalf("page 3 = %d items", len(page))
	}

	s.SetPage(4)
	if got := s.PaginatedProducts(); len(got) != 0 {
		t.Fatalf("page past the end = %d items, want 0", len(got))
	}
}

func TestFilterSettersResetPage(t *testing.T) {
	records := []models.ProductRecord{record("p1", "Drill", "c1", "Tools", 50)}
	s := testStore(t, listHandler(&records, nil), 10)

	s.SetPage(3)
	s.SetSearch("x")
	if s.Page() != 1 {
		t.Fatal("SetSearch did not reset pagination")
	}
	s.SetPage(3)
	s.SetCategory("c1")
	if s.Page() != 1 {
		t.Fatal("SetCategory did not reset pagination")
	}
	s.SetPage(3)
	s.SetStatus(string(models.StatusInStock))
	if s.Page() != 1 {
		t.Fatal("SetStatus did not reset pagination")
	}
}

func TestStatsCountUnfilteredCollection(t *testing.T) {
	records := []models.ProductRecord{
		record("p1", "Drill", "c1", "Tools", 50),
		record("p2", "Hammer", "c1", "Tools", 5),
		record("p3", "Nails", "c2", "Fasteners", 0),
	}
	s := testStore(t, listHandler(&records, nil), 20)
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Filters must not affect the stats.
	s.SetSearch("drill")

	stats := s.GetStats()
	if stats.Total != 3 || stats.InStock != 1 || stats.LowStock != 1 || stats.OutOfStock != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestRestockRoundTrip(t *testing.T) {
	records := []models.ProductRecord{record("p1", "Drill", "c1", "Tools", 5)}
	mutations := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/v1/organizations/org-1/products/p1/restock" {
			writeEnvelope(w, 200, "success", "restocked", record("p1", "Drill", "c1", "Tools", 25))
			return
		}
		http.NotFound(w, r)
	})
	s := testStore(t, listHandler(&records, mutations), 20)

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.Products()[0].Status; got != models.StatusLowStock {
		t.Fatalf("pre-restock status = %q", got)
	}

	product, err := s.Restock(context.Background(), "p1", 20)
	if err != nil {
		t.Fatal(err)
	}
	if product.AvailableQuantity != 25 || product.Status != models.StatusInStock {
		t.Fatalf("post-restock product = %+v", product)
	}
	if got := s.Products()[0].Status; got != models.StatusInStock {
		t.Fatalf("store record status = %q", got)
	}
}

func TestDeleteRemovesFromView(t *testing.T) {
	records := []models.ProductRecord{
		record("p1", "Drill", "c1", "Tools", 50),
		record("p2", "Hammer", "c1", "Tools", 50),
	}
	mutations := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/api/v1/organizations/org-1/products/p1" {
			writeEnvelope(w, 200, "success", "deleted", nil)
			return
		}
		http.NotFound(w, r)
	})
	s := testStore(t, listHandler(&records, mutations), 20)

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}

	for _, p := range s.FilteredProducts() {
		if p.ID == "p1" {
			t.Fatal("deleted product still in filtered view")
		}
	}
	page := s.PaginatedProducts()
	if len(page) != 1 || page[0].ID != "p2" {
		t.Fatalf("paginated view = %+v", page)
	}
}

func TestCheckOutRefetchesCollection(t *testing.T) {
	records := []models.ProductRecord{record("p1", "Drill", "c1", "Tools", 10)}
	mutations := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/v1/organizations/org-1/products/p1/check-out" {
			// Server applies the paired-quantity arithmetic.
			records[0].AvailableQuantity = 7
			records[0].CheckedOutQuantity = 3
			writeEnvelope(w, 200, "success", "checked out", nil)
			return
		}
		http.NotFound(w, r)
	})
	s := testStore(t, listHandler(&records, mutations), 20)

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := s.CheckOut(context.Background(), "p1", 3); err != nil {
		t.Fatal(err)
	}

	p := s.Products()[0]
	if p.AvailableQuantity != 7 || p.CheckedOutQuantity != 3 {
		t.Fatalf("collection not refreshed after check-out: %+v", p)
	}
}

func TestFetchFailureLeavesCollectionUnchanged(t *testing.T) {
	fail := false
	records := []models.ProductRecord{record("p1", "Drill", "c1", "Tools", 50)}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			writeEnvelope(w, 500, "error", "database down", nil)
			return
		}
		listHandler(&records, nil).ServeHTTP(w, r)
	})
	s := testStore(t, handler, 20)

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	fail = true
	if err := s.Fetch(context.Background()); err == nil {
		t.Fatal("failed fetch reported success")
	}
	if len(s.Products()) != 1 {
		t.Fatal("failed fetch modified the collection")
	}
	if s.Err() == "" {
		t.Fatal("error message not recorded")
	}
	if s.Loading() {
		t.Fatal("loading flag stuck after failure")
	}
}
