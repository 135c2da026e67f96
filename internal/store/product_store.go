package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/notify"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// Filter sentinels the dashboard sends to mean "no filter".
const (
	AllCategories = "All Categories"
	AllStatus     = "All Status"
)

const noticeSource = "products"

// ProductStore is the single source of truth for the product list, plus the
// filter, pagination, and selection state the dashboard renders from. All
// mutations go through its action methods; the in-memory collection is never
// modified from outside.
//
// Actions do not serialize overlapping calls: two concurrent fetches both
// resolve and the later one wins. That matches the optimistic-UI risk profile
// the dashboard accepts.
type ProductStore struct {
	client   *api.Client
	notifier notify.Notifier
	pageSize int

	mu       sync.RWMutex
	products []models.Product
	total    int
	loading  bool
	errMsg   string

	search       string
	categoryID   string
	status       string
	currentPage  int
	itemsPerPage int
	selected     map[string]struct{}
}

// New constructs a ProductStore. pageSize is the fetch size against the
// backend; the view pagination defaults to the same size.
func New(client *api.Client, notifier notify.Notifier, pageSize int) *ProductStore {
	if notifier == nil {
		notifier = &notify.NopNotifier{}
	}
	return &ProductStore{
		client:       client,
		notifier:     notifier,
		pageSize:     pageSize,
		currentPage:  1,
		itemsPerPage: pageSize,
		selected:     make(map[string]struct{}),
	}
}

// fail records an error outcome: store error message, notification, log.
// State other than the error message is left unchanged.
func (s *ProductStore) fail(env *api.Envelope, fallback string) error {
	msg := env.MessageOr(fallback)
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.notifier.Error(noticeSource, msg)
	log.Warn().Int("status_code", env.StatusCode).Str("message", msg).Msg("product action failed")
	return fmt.Errorf("%w: %s", utils.ErrUpstreamRejected, msg)
}

func (s *ProductStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	if v {
		s.errMsg = ""
	}
	s.mu.Unlock()
}

// Fetch replaces the in-memory collection with the first backend page and
// updates the pagination total. On failure the collection is left unchanged.
func (s *ProductStore) Fetch(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	env := s.client.ListProducts(ctx, 0, s.pageSize)
	if !env.OK() {
		return s.fail(env, "failed to load products")
	}

	var data api.ProductListData
	if err := env.Decode(&data); err != nil {
		return s.fail(api.Error(err.Error(), env.StatusCode), "failed to load products")
	}

	products := models.ProductsFromRecords(data.Products)
	s.mu.Lock()
	s.products = products
	s.total = data.Total
	s.mu.Unlock()
	return nil
}

// Create posts a new product and appends the mapped record to the collection.
func (s *ProductStore) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	env := s.client.CreateProduct(ctx, in)
	if !env.OK() {
		return models.Product{}, s.fail(env, "failed to create product")
	}

	var record models.ProductRecord
	if err := env.Decode(&record); err != nil {
		return models.Product{}, s.fail(api.Error(err.Error(), env.StatusCode), "failed to create product")
	}

	product := models.ProductFromRecord(record)
	s.mu.Lock()
	s.products = append(s.products, product)
	s.total++
	s.mu.Unlock()

	s.notifier.Success(noticeSource, fmt.Sprintf("Product %q created", product.Name))
	return product, nil
}

// Update patches a product and replaces the matching in-memory record by id.
func (s *ProductStore) Update(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	env := s.client.UpdateProduct(ctx, id, in)
	if !env.OK() {
		return models.Product{}, s.fail(env, "failed to update product")
	}

	var record models.ProductRecord
	if err := env.Decode(&record); err != nil {
		return models.Product{}, s.fail(api.Error(err.Error(), env.StatusCode), "failed to update product")
	}

	product := models.ProductFromRecord(record)
	s.replace(product)
	s.notifier.Success(noticeSource, fmt.Sprintf("Product %q updated", product.Name))
	return product, nil
}

// Delete removes a product upstream and from the in-memory collection.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	env := s.client.DeleteProduct(ctx, id)
	if !env.OK() {
		return s.fail(env, "failed to delete product")
	}

	s.mu.Lock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			if s.total > 0 {
				s.total--
			}
			break
		}
	}
	delete(s.selected, id)
	s.mu.Unlock()

	s.notifier.Success(noticeSource, "Product deleted")
	return nil
}

// applySnapshot replaces a record with the server's post-mutation snapshot.
// Quantities are never computed locally for these paths.
func (s *ProductStore) applySnapshot(env *api.Envelope, fallback string) (models.Product, error) {
	if !env.OK() {
		return models.Product{}, s.fail(env, fallback)
	}
	var record models.ProductRecord
	if err := env.Decode(&record); err != nil {
		return models.Product{}, s.fail(api.Error(err.Error(), env.StatusCode), fallback)
	}
	product := models.ProductFromRecord(record)
	s.replace(product)
	return product, nil
}

// Restock adds quantity to a product's available stock.
func (s *ProductStore) Restock(ctx context.Context, id string, quantity int) (models.Product, error) {
	product, err := s.applySnapshot(s.client.RestockProduct(ctx, id, quantity), "failed to restock product")
	if err == nil {
		s.notifier.Success(noticeSource, fmt.Sprintf("Product %q restocked", product.Name))
	}
	return product, err
}

// Consume removes quantity from a product's available stock.
func (s *ProductStore) Consume(ctx context.Context, id string, quantity int) (models.Product, error) {
	product, err := s.applySnapshot(s.client.ConsumeProduct(ctx, id, quantity), "failed to consume product")
	if err == nil {
		s.notifier.Success(noticeSource, fmt.Sprintf("Product %q consumed", product.Name))
	}
	return product, err
}

// CheckOut moves quantity to checked-out, then re-fetches the whole
// collection: the mutation changes both available and checked-out counts and
// the server owns that arithmetic.
func (s *ProductStore) CheckOut(ctx context.Context, id string, quantity int) error {
	env := s.client.CheckOutProduct(ctx, id, quantity)
	if !env.OK() {
		return s.fail(env, "failed to check out product")
	}
	s.notifier.Success(noticeSource, "Product checked out")
	return s.Fetch(ctx)
}

// CheckIn returns checked-out quantity to available, then re-fetches.
func (s *ProductStore) CheckIn(ctx context.Context, id string, quantity int) error {
	env := s.client.CheckInProduct(ctx, id, quantity)
	if !env.OK() {
		return s.fail(env, "failed to check in product")
	}
	s.notifier.Success(noticeSource, "Product checked in")
	return s.Fetch(ctx)
}

// replace swaps the in-memory record with the same id.
func (s *ProductStore) replace(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == product.ID {
			s.products[i] = product
			return
		}
	}
	// Unknown id: the record was created elsewhere, keep it visible.
	s.products = append(s.products, product)
}

// SetSearch updates the search filter and resets pagination.
func (s *ProductStore) SetSearch(search string) {
	s.mu.Lock()
	s.search = search
	s.currentPage = 1
	s.mu.Unlock()
}

// SetCategory updates the category filter and resets pagination.
func (s *ProductStore) SetCategory(categoryID string) {
	s.mu.Lock()
	s.categoryID = categoryID
	s.currentPage = 1
	s.mu.Unlock()
}

// SetStatus updates the status filter and resets pagination.
func (s *ProductStore) SetStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.currentPage = 1
	s.mu.Unlock()
}

// SetPage moves the view pagination to page (1-based).
func (s *ProductStore) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.currentPage = page
	s.mu.Unlock()
}

// Select adds a product id to the multi-select set.
func (s *ProductStore) Select(id string) {
	s.mu.Lock()
	s.selected[id] = struct{}{}
	s.mu.Unlock()
}

// Deselect removes a product id from the multi-select set.
func (s *ProductStore) Deselect(id string) {
	s.mu.Lock()
	delete(s.selected, id)
	s.mu.Unlock()
}

// ClearSelection empties the multi-select set.
func (s *ProductStore) ClearSelection() {
	s.mu.Lock()
	s.selected = make(map[string]struct{})
	s.mu.Unlock()
}
