package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/category"
	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/notify"
	"github.com/stockdeck/stockdeck/internal/session"
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

type fixture struct {
	provider *category.Provider
	sessions *session.Store
	visuals  *category.VisualStore
}

func newFixture(t *testing.T, orgID string, handler http.Handler) *fixture {
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
	if orgID != "" {
		if err := sessions.SetOrganizationID(ctx, orgID); err != nil {
			t.Fatal(err)
		}
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(&config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, sessions, "test")
	visuals := category.NewVisualStore(local)
	return &fixture{
		provider: category.NewProvider(client, sessions, visuals, &notify.NopNotifier{}),
		sessions: sessions,
		visuals:  visuals,
	}
}

func TestNotFoundMeansZeroCategories(t *testing.T) {
	f := newFixture(t, "org-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 404, "error", "no categories found", nil)
	}))

	if err := f.provider.Load(context.Background()); err != nil {
		t.Fatalf("404 treated as error: %v", err)
	}
	if got := f.provider.Categories(); len(got) != 0 {
		t.Fatalf("got %d categories", len(got))
	}
	if f.provider.Err() != "" {
		t.Fatalf("error state set: %q", f.provider.Err())
	}
}

func TestOrganizationResolvedFromBackend(t *testing.T) {
	f := newFixture(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/organizations":
			writeEnvelope(w, 200, "success", "ok", []models.Organization{
				{ID: "org-7", Name: "Acme"},
				{ID: "org-8", Name: "Other"},
			})
		case "/api/v1/organizations/org-7/categories":
			writeEnvelope(w, 200, "success", "ok", []models.CategoryRecord{
				{ID: "c1", Name: "Tools", MemberCount: 4},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	if err := f.provider.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.sessions.OrganizationID(context.Background()); got != "org-7" {
		t.Fatalf("cached org = %q, want first result", got)
	}
	cats := f.provider.Categories()
	if len(cats) != 1 || cats[0].Status != models.CategoryActive {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestNoOrganizationsSetsErrorState(t *testing.T) {
	f := newFixture(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "success", "ok", []models.Organization{})
	}))

	if err := f.provider.Load(context.Background()); err == nil {
		t.Fatal("load succeeded without any organization")
	}
	if f.provider.Err() != category.ErrNoOrganizationMessage {
		t.Fatalf("error state = %q", f.provider.Err())
	}
}

func TestVisualSurvivesNameOnlyUpdate(t *testing.T) {
	f := newFixture(t, "org-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			var in map[string]string
			json.NewDecoder(r.Body).Decode(&in)
			if _, ok := in["iconId"]; ok {
				t.Error("visual field leaked into the API payload")
			}
			writeEnvelope(w, 201, "success", "created", models.CategoryRecord{
				ID: "c9", Name: in["name"], Description: in["description"],
			})
		case r.Method == http.MethodPatch:
			var in map[string]string
			json.NewDecoder(r.Body).Decode(&in)
			writeEnvelope(w, 200, "success", "updated", models.CategoryRecord{
				ID: "c9", Name: in["name"],
			})
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := context.Background()

	created, err := f.provider.Add(ctx, models.CategoryInput{Name: "Hardware", IconID: "cog"})
	if err != nil {
		t.Fatal(err)
	}
	if created.IconID != "cog" {
		t.Fatalf("created visual = %+v", created.Visual)
	}

	updated, err := f.provider.Update(ctx, "c9", models.CategoryInput{Name: "Hardware & Tools"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IconID != "cog" {
		t.Fatalf("icon regressed after name-only update: %+v", updated.Visual)
	}
	if updated.Name != "Hardware & Tools" {
		t.Fatalf("name not updated: %+v", updated)
	}

	// The overlay itself holds the value, so a later re-fetch keeps it too.
	if v, ok := f.visuals.Get("c9"); !ok || v.IconID != "cog" {
		t.Fatalf("overlay entry = %+v ok=%v", v, ok)
	}
}

func TestUpdateUnknownIDReturnsServerRecord(t *testing.T) {
	f := newFixture(t, "org-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			writeEnvelope(w, 200, "success", "updated", models.CategoryRecord{
				ID: "c3", Name: "Outdoors", MemberCount: 2,
			})
			return
		}
		http.NotFound(w, r)
	}))

	// No Load ran, so "c3" is not in memory yet.
	updated, err := f.provider.Update(context.Background(), "c3", models.CategoryInput{Name: "Outdoors"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != "c3" || updated.Name != "Outdoors" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.IconID != models.DefaultVisual.IconID {
		t.Fatalf("visual = %+v", updated.Visual)
	}

	cats := f.provider.Categories()
	if len(cats) != 1 || cats[0].ID != "c3" {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestVisualOverlayMergedOnLoad(t *testing.T) {
	f := newFixture(t, "org-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "success", "ok", []models.CategoryRecord{
			{ID: "c1", Name: "Tools", MemberCount: 3},
			{ID: "c2", Name: "Misc", MemberCount: 1},
		})
	}))
	if err := f.visuals.Save("c1", models.Visual{IconID: "wrench", BgClass: "bg-gradient-amber", ColorValue: "#f59e0b"}); err != nil {
		t.Fatal(err)
	}

	if err := f.provider.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	cats := f.provider.Categories()
	if cats[0].IconID != "wrench" {
		t.Fatalf("saved visual not merged: %+v", cats[0].Visual)
	}
	if cats[1].IconID != models.DefaultVisual.IconID {
		t.Fatalf("default visual not applied: %+v", cats[1].Visual)
	}
	if cats[0].Percentage != "75%" || cats[1].Percentage != "25%" {
		t.Fatalf("percentages = %q, %q", cats[0].Percentage, cats[1].Percentage)
	}
}

func TestDeletePurgesVisualEntry(t *testing.T) {
	f := newFixture(t, "org-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			writeEnvelope(w, 200, "success", "deleted", nil)
			return
		}
		http.NotFound(w, r)
	}))
	if err := f.visuals.Save("c1", models.Visual{IconID: "cog"}); err != nil {
		t.Fatal(err)
	}

	if err := f.provider.Delete(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.visuals.Get("c1"); ok {
		t.Fatal("visual entry survived category deletion")
	}
}

func TestTotals(t *testing.T) {
	f := newFixture(t, "org-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "success", "ok", []models.CategoryRecord{
			{ID: "c1", Name: "Tools", MemberCount: 5},
			{ID: "c2", Name: "Misc", MemberCount: 0},
		})
	}))
	if err := f.provider.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	products, active, empty := f.provider.Totals()
	if products != 5 || active != 1 || empty != 1 {
		t.Fatalf("totals = %d, %d, %d", products, active, empty)
	}
}
