package shelf

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/session"
)

// LocalRepository simulates the shelf REST contract against the local store,
// so the dashboard works before the backend grows a shelf API. Shelves live in
// one JSON blob per organization, shelf products in one blob per shelf.
type LocalRepository struct {
	store    *localstore.Store
	sessions *session.Store
}

// NewLocalRepository constructs a LocalRepository.
func NewLocalRepository(store *localstore.Store, sessions *session.Store) *LocalRepository {
	return &LocalRepository{store: store, sessions: sessions}
}

func shelvesKey(orgID string) string {
	return fmt.Sprintf("mock_shelves_%s", orgID)
}

func shelfProductsKey(orgID, shelfID string) string {
	return fmt.Sprintf("mock_shelf_products_%s_%s", orgID, shelfID)
}

// requireOrg mirrors the remote client's precondition: no resolvable
// organization id means a 400 envelope, no work done.
func (r *LocalRepository) requireOrg(ctx context.Context) (string, *api.Envelope) {
	orgID := r.sessions.OrganizationID(ctx)
	if orgID == "" {
		return "", api.Error("no organization selected", http.StatusBadRequest)
	}
	return orgID, nil
}

func (r *LocalRepository) loadShelves(orgID string) ([]models.Shelf, *api.Envelope) {
	var shelves []models.Shelf
	if _, err := r.store.GetJSON(shelvesKey(orgID), &shelves); err != nil {
		log.Error().Err(err).Str("org_id", orgID).Msg("failed to read local shelves")
		return nil, api.Error("failed to read shelves", http.StatusInternalServerError)
	}
	return shelves, nil
}

func (r *LocalRepository) saveShelves(orgID string, shelves []models.Shelf) *api.Envelope {
	if err := r.store.SetJSON(shelvesKey(orgID), shelves); err != nil {
		log.Error().Err(err).Str("org_id", orgID).Msg("failed to write local shelves")
		return api.Error("failed to save shelves", http.StatusInternalServerError)
	}
	return nil
}

func (r *LocalRepository) Shelves(ctx context.Context) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	shelves, errEnv := r.loadShelves(orgID)
	if errEnv != nil {
		return errEnv
	}
	if shelves == nil {
		shelves = []models.Shelf{}
	}
	return api.Success("shelves retrieved", shelves)
}

func (r *LocalRepository) CreateShelf(ctx context.Context, in models.ShelfInput) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	shelves, errEnv := r.loadShelves(orgID)
	if errEnv != nil {
		return errEnv
	}

	now := time.Now().Format(time.RFC3339)
	shelf := models.Shelf{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Address:        in.Address,
		IsDefault:      len(shelves) == 0,
		CreatedOn:      now,
		LastModifiedOn: now,
	}
	shelves = append(shelves, shelf)
	if errEnv := r.saveShelves(orgID, shelves); errEnv != nil {
		return errEnv
	}
	return api.Success("shelf created", shelf)
}

func (r *LocalRepository) UpdateShelf(ctx context.Context, id string, in models.ShelfInput) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	shelves, errEnv := r.loadShelves(orgID)
	if errEnv != nil {
		return errEnv
	}

	for i, shelf := range shelves {
		if shelf.ID != id {
			continue
		}
		if in.Name != "" {
			shelf.Name = in.Name
		}
		shelf.Description = in.Description
		shelf.Address = in.Address
		shelf.LastModifiedOn = time.Now().Format(time.RFC3339)
		shelves[i] = shelf
		if errEnv := r.saveShelves(orgID, shelves); errEnv != nil {
			return errEnv
		}
		return api.Success("shelf updated", shelf)
	}
	return api.Error("shelf not found", http.StatusNotFound)
}

func (r *LocalRepository) DeleteShelf(ctx context.Context, id string) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	shelves, errEnv := r.loadShelves(orgID)
	if errEnv != nil {
		return errEnv
	}

	for i, shelf := range shelves {
		if shelf.ID != id {
			continue
		}
		shelves = append(shelves[:i], shelves[i+1:]...)
		if errEnv := r.saveShelves(orgID, shelves); errEnv != nil {
			return errEnv
		}
		// A deleted shelf takes its product associations with it.
		if err := r.store.Delete(shelfProductsKey(orgID, id)); err != nil {
			log.Warn().Err(err).Str("shelf_id", id).Msg("failed to purge shelf products")
		}
		return api.Success("shelf deleted", shelf)
	}
	return api.Error("shelf not found", http.StatusNotFound)
}

func (r *LocalRepository) loadProducts(orgID, shelfID string) ([]models.ShelfProduct, *api.Envelope) {
	var products []models.ShelfProduct
	if _, err := r.store.GetJSON(shelfProductsKey(orgID, shelfID), &products); err != nil {
		log.Error().Err(err).Str("shelf_id", shelfID).Msg("failed to read local shelf products")
		return nil, api.Error("failed to read shelf products", http.StatusInternalServerError)
	}
	return products, nil
}

func (r *LocalRepository) saveProducts(orgID, shelfID string, products []models.ShelfProduct) *api.Envelope {
	if err := r.store.SetJSON(shelfProductsKey(orgID, shelfID), products); err != nil {
		log.Error().Err(err).Str("shelf_id", shelfID).Msg("failed to write local shelf products")
		return api.Error("failed to save shelf products", http.StatusInternalServerError)
	}
	return nil
}

func (r *LocalRepository) ShelfProducts(ctx context.Context, shelfID string) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	products, errEnv := r.loadProducts(orgID, shelfID)
	if errEnv != nil {
		return errEnv
	}
	if products == nil {
		products = []models.ShelfProduct{}
	}
	return api.Success("shelf products retrieved", products)
}

// AddProduct places a product on a shelf. Adding a product that is already on
// the shelf increments its quantity instead of creating a duplicate row.
func (r *LocalRepository) AddProduct(ctx context.Context, shelfID string, in models.ShelfProductInput) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	if in.Quantity <= 0 {
		return api.Error("quantity must be a positive integer", http.StatusBadRequest)
	}
	products, errEnv := r.loadProducts(orgID, shelfID)
	if errEnv != nil {
		return errEnv
	}

	for i, p := range products {
		if p.ProductID == in.ProductID {
			products[i].Quantity += in.Quantity
			if errEnv := r.saveProducts(orgID, shelfID, products); errEnv != nil {
				return errEnv
			}
			return api.Success("shelf product quantity increased", products[i])
		}
	}

	product := models.ShelfProduct{
		ProductID:    in.ProductID,
		ProductName:  in.ProductName,
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		PhotoURL:     in.PhotoURL,
		CategoryName: in.CategoryName,
	}
	products = append(products, product)
	if errEnv := r.saveProducts(orgID, shelfID, products); errEnv != nil {
		return errEnv
	}
	return api.Success("product added to shelf", product)
}

func (r *LocalRepository) UpdateProductQuantity(ctx context.Context, shelfID, productID string, quantity int) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	products, errEnv := r.loadProducts(orgID, shelfID)
	if errEnv != nil {
		return errEnv
	}

	for i, p := range products {
		if p.ProductID == productID {
			products[i].Quantity = quantity
			if errEnv := r.saveProducts(orgID, shelfID, products); errEnv != nil {
				return errEnv
			}
			return api.Success("shelf product updated", products[i])
		}
	}
	return api.Error("product not on shelf", http.StatusNotFound)
}

func (r *LocalRepository) RemoveProduct(ctx context.Context, shelfID, productID string) *api.Envelope {
	orgID, errEnv := r.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	products, errEnv := r.loadProducts(orgID, shelfID)
	if errEnv != nil {
		return errEnv
	}

	for i, p := range products {
		if p.ProductID == productID {
			products = append(products[:i], products[i+1:]...)
			if errEnv := r.saveProducts(orgID, shelfID, products); errEnv != nil {
				return errEnv
			}
			return api.Success("product removed from shelf", p)
		}
	}
	return api.Error("product not on shelf", http.StatusNotFound)
}
