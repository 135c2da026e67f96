package shelf_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/shelf"
)

func localRepo(t *testing.T, orgID string) (*shelf.LocalRepository, *localstore.Store) {
	t.Helper()
	local, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { local.Close() })

	sessions := session.New(session.NewDurableScope(local), session.NewMemoryScope(0))
	if orgID != "" {
		if err := sessions.SetOrganizationID(context.Background(), orgID); err != nil {
			t.Fatal(err)
		}
	}
	return shelf.NewLocalRepository(local, sessions), local
}

func TestMissingOrgShortCircuitsEveryOperation(t *testing.T) {
	repo, _ := localRepo(t, "")
	ctx := context.Background()

	envs := map[string]interface {
		OK() bool
	}{
		"Shelves":               repo.Shelves(ctx),
		"CreateShelf":           repo.CreateShelf(ctx, models.ShelfInput{Name: "A"}),
		"UpdateShelf":           repo.UpdateShelf(ctx, "s1", models.ShelfInput{}),
		"DeleteShelf":           repo.DeleteShelf(ctx, "s1"),
		"ShelfProducts":         repo.ShelfProducts(ctx, "s1"),
		"AddProduct":            repo.AddProduct(ctx, "s1", models.ShelfProductInput{ProductID: "p1"}),
		"UpdateProductQuantity": repo.UpdateProductQuantity(ctx, "s1", "p1", 1),
		"RemoveProduct":         repo.RemoveProduct(ctx, "s1", "p1"),
	}
	for name, env := range envs {
		if env.OK() {
			t.Errorf("%s succeeded without an organization", name)
		}
	}
	// spot-check the envelope shape
	env := repo.Shelves(ctx)
	if env.Status != "error" || env.StatusCode != http.StatusBadRequest {
		t.Fatalf("envelope = %+v, want error 400", env)
	}
}

func TestFirstShelfIsDefault(t *testing.T) {
	repo, _ := localRepo(t, "org-1")
	ctx := context.Background()

	env := repo.CreateShelf(ctx, models.ShelfInput{Name: "Main"})
	if !env.OK() {
		t.Fatalf("create failed: %+v", env)
	}
	var first models.Shelf
	if err := env.Decode(&first); err != nil {
		t.Fatal(err)
	}
	if !first.IsDefault {
		t.Fatal("first shelf is not default")
	}
	if first.ID == "" || first.CreatedOn == "" {
		t.Fatalf("synthetic fields missing: %+v", first)
	}

	env = repo.CreateShelf(ctx, models.ShelfInput{Name: "Overflow"})
	var second models.Shelf
	if err := env.Decode(&second); err != nil {
		t.Fatal(err)
	}
	if second.IsDefault {
		t.Fatal("second shelf marked default")
	}
}

func TestShelvesEmptyWhenNoneStored(t *testing.T) {
	repo, _ := localRepo(t, "org-1")

	env := repo.Shelves(context.Background())
	if !env.OK() {
		t.Fatalf("list failed: %+v", env)
	}
	var shelves []models.Shelf
	if err := env.Decode(&shelves); err != nil {
		t.Fatal(err)
	}
	if len(shelves) != 0 {
		t.Fatalf("got %d shelves", len(shelves))
	}
}

func TestAddProductIncrementsExistingEntry(t *testing.T) {
	repo, _ := localRepo(t, "org-1")
	ctx := context.Background()

	env := repo.CreateShelf(ctx, models.ShelfInput{Name: "Main"})
	var s models.Shelf
	if err := env.Decode(&s); err != nil {
		t.Fatal(err)
	}

	in := models.ShelfProductInput{ProductID: "px", ProductName: "Drill", Quantity: 3}
	if env := repo.AddProduct(ctx, s.ID, in); !env.OK() {
		t.Fatalf("first add failed: %+v", env)
	}
	if env := repo.AddProduct(ctx, s.ID, in); !env.OK() {
		t.Fatalf("second add failed: %+v", env)
	}

	env = repo.ShelfProducts(ctx, s.ID)
	var products []models.ShelfProduct
	if err := env.Decode(&products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d entries, want 1", len(products))
	}
	if products[0].Quantity != 6 {
		t.Fatalf("quantity = %d, want 6", products[0].Quantity)
	}
}

func TestAddProductRejectsNonPositiveQuantity(t *testing.T) {
	repo, _ := localRepo(t, "org-1")
	ctx := context.Background()

	var s models.Shelf
	if err := repo.CreateShelf(ctx, models.ShelfInput{Name: "Main"}).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if env := repo.AddProduct(ctx, s.ID, models.ShelfProductInput{ProductID: "px", Quantity: 2}); !env.OK() {
		t.Fatalf("add failed: %+v", env)
	}

	for _, qty := range []int{0, -5} {
		env := repo.AddProduct(ctx, s.ID, models.ShelfProductInput{ProductID: "px", Quantity: qty})
		if env.OK() || env.StatusCode != http.StatusBadRequest {
			t.Fatalf("quantity %d accepted: %+v", qty, env)
		}
	}

	var products []models.ShelfProduct
	if err := repo.ShelfProducts(ctx, s.ID).Decode(&products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Quantity != 2 {
		t.Fatalf("stored entries = %+v, want single entry with quantity 2", products)
	}
}

func TestUpdateAndRemoveShelfProduct(t *testing.T) {
	repo, _ := localRepo(t, "org-1")
	ctx := context.Background()

	var s models.Shelf
	if err := repo.CreateShelf(ctx, models.ShelfInput{Name: "Main"}).Decode(&s); err != nil {
		t.Fatal(err)
	}
	repo.AddProduct(ctx, s.ID, models.ShelfProductInput{ProductID: "px", Quantity: 2})

	if env := repo.UpdateProductQuantity(ctx, s.ID, "px", 9); !env.OK() {
		t.Fatalf("update failed: %+v", env)
	}
	if env := repo.UpdateProductQuantity(ctx, s.ID, "nope", 1); env.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product update = %+v", env)
	}

	if env := repo.RemoveProduct(ctx, s.ID, "px"); !env.OK() {
		t.Fatalf("remove failed: %+v", env)
	}
	var products []models.ShelfProduct
	if err := repo.ShelfProducts(ctx, s.ID).Decode(&products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 0 {
		t.Fatalf("got %d entries after remove", len(products))
	}
}

func TestDeleteShelfPurgesProductBlob(t *testing.T) {
	repo, local := localRepo(t, "org-1")
	ctx := context.Background()

	var s models.Shelf
	if err := repo.CreateShelf(ctx, models.ShelfInput{Name: "Main"}).Decode(&s); err != nil {
		t.Fatal(err)
	}
	repo.AddProduct(ctx, s.ID, models.ShelfProductInput{ProductID: "px", Quantity: 2})

	if env := repo.DeleteShelf(ctx, s.ID); !env.OK() {
		t.Fatalf("delete failed: %+v", env)
	}

	if _, ok, _ := local.Get("mock_shelf_products_org-1_" + s.ID); ok {
		t.Fatal("shelf product blob survived shelf deletion")
	}
	var shelves []models.Shelf
	if err := repo.Shelves(ctx).Decode(&shelves); err != nil {
		t.Fatal(err)
	}
	if len(shelves) != 0 {
		t.Fatalf("got %d shelves after delete", len(shelves))
	}
}

func TestUpdateShelfMergesFields(t *testing.T) {
	repo, _ := localRepo(t, "org-1")
	ctx := context.Background()

	var s models.Shelf
	if err := repo.CreateShelf(ctx, models.ShelfInput{Name: "Main", Address: "Aisle 1"}).Decode(&s); err != nil {
		t.Fatal(err)
	}

	env := repo.UpdateShelf(ctx, s.ID, models.ShelfInput{Name: "Main Floor", Address: "Aisle 2"})
	if !env.OK() {
		t.Fatalf("update failed: %+v", env)
	}
	var updated models.Shelf
	if err := env.Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Main Floor" || updated.Address != "Aisle 2" {
		t.Fatalf("updated = %+v", updated)
	}
	if !updated.IsDefault {
		t.Fatal("default flag lost on update")
	}

	if env := repo.UpdateShelf(ctx, "missing", models.ShelfInput{Name: "X"}); env.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown shelf update = %+v", env)
	}
}
