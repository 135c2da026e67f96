package category

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/notify"
	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/utils"
)

const noticeSource = "categories"

// ErrNoOrganizationMessage is the user-visible error when the caller has no
// organization at all.
const ErrNoOrganizationMessage = "create an organization first"

// Provider resolves the active organization, loads its categories, and
// overlays the locally persisted visual metadata on every record.
type Provider struct {
	client   *api.Client
	sessions *session.Store
	visuals  *VisualStore
	notifier notify.Notifier

	mu         sync.RWMutex
	categories []models.Category
	loading    bool
	errMsg     string
}

// NewProvider constructs a category Provider.
func NewProvider(client *api.Client, sessions *session.Store, visuals *VisualStore, notifier notify.Notifier) *Provider {
	if notifier == nil {
		notifier = &notify.NopNotifier{}
	}
	return &Provider{
		client:   client,
		sessions: sessions,
		visuals:  visuals,
		notifier: notifier,
	}
}

// resolveOrganization ensures an active organization id is cached, querying
// the backend and taking the first organization when none is.
func (p *Provider) resolveOrganization(ctx context.Context) error {
	if p.sessions.OrganizationID(ctx) != "" {
		return nil
	}

	env := p.client.ListOrganizations(ctx)
	if !env.OK() {
		p.setError(env.MessageOr("failed to load organizations"))
		return fmt.Errorf("%w: %s", utils.ErrUpstreamRejected, env.Message)
	}

	var orgs []models.Organization
	if err := env.Decode(&orgs); err != nil {
		p.setError("failed to load organizations")
		return err
	}
	if len(orgs) == 0 {
		p.setError(ErrNoOrganizationMessage)
		return utils.ErrNoOrganization
	}

	if err := p.sessions.SetOrganizationID(ctx, orgs[0].ID); err != nil {
		return err
	}
	log.Info().Str("org_id", orgs[0].ID).Msg("resolved active organization")
	return nil
}

// Load resolves the organization and replaces the in-memory categories with
// the backend's, merged with the visual overlay. A 404 from the list fetch
// means zero categories, not an error.
func (p *Provider) Load(ctx context.Context) error {
	p.setLoading(true)
	defer p.setLoading(false)

	if err := p.resolveOrganization(ctx); err != nil {
		return err
	}

	env := p.client.ListCategories(ctx)
	if env.NotFound() {
		p.mu.Lock()
		p.categories = []models.Category{}
		p.errMsg = ""
		p.mu.Unlock()
		return nil
	}
	if !env.OK() {
		msg := env.MessageOr("failed to load categories")
		p.setError(msg)
		return fmt.Errorf("%w: %s", utils.ErrUpstreamRejected, msg)
	}

	var records []models.CategoryRecord
	if err := env.Decode(&records); err != nil {
		p.setError("failed to load categories")
		return err
	}

	overlay := p.visuals.All()
	total := 0
	for _, r := range records {
		total += r.MemberCount
	}
	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		visual, ok := overlay[r.ID]
		if !ok {
			visual = models.DefaultVisual
		}
		categories = append(categories, models.CategoryFromRecord(r, visual, total))
	}

	p.mu.Lock()
	p.categories = categories
	p.errMsg = ""
	p.mu.Unlock()
	return nil
}

// Add creates a category upstream from name and description, saves the chosen
// visual locally under the new server-assigned id, and prepends the merged
// category.
func (p *Provider) Add(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	env := p.client.CreateCategory(ctx, in.Name, in.Description)
	if !env.OK() {
		msg := env.MessageOr("failed to create category")
		p.setError(msg)
		p.notifier.Error(noticeSource, msg)
		return models.Category{}, fmt.Errorf("%w: %s", utils.ErrUpstreamRejected, msg)
	}

	var record models.CategoryRecord
	if err := env.Decode(&record); err != nil {
		p.setError("failed to create category")
		return models.Category{}, err
	}

	visual := visualFromInput(in, models.DefaultVisual)
	if err := p.visuals.Save(record.ID, visual); err != nil {
		log.Warn().Err(err).Str("category_id", record.ID).Msg("failed to save category visual")
	}

	category := models.CategoryFromRecord(record, visual, 0)
	p.mu.Lock()
	p.categories = append([]models.Category{category}, p.categories...)
	p.recomputePercentagesLocked()
	p.mu.Unlock()

	p.notifier.Success(noticeSource, fmt.Sprintf("Category %q created", category.Name))
	return category, nil
}

// Update splits the input into the API payload (name/description) and the
// visual payload (local overlay). Visual fields never regress to defaults
// once locally set.
func (p *Provider) Update(ctx context.Context, id string, in models.CategoryInput) (models.Category, error) {
	env := p.client.UpdateCategory(ctx, id, in.Name, in.Description)
	if !env.OK() {
		msg := env.MessageOr("failed to update category")
		p.setError(msg)
		p.notifier.Error(noticeSource, msg)
		return models.Category{}, fmt.Errorf("%w: %s", utils.ErrUpstreamRejected, msg)
	}

	var record models.CategoryRecord
	if err := env.Decode(&record); err != nil {
		p.setError("failed to update category")
		return models.Category{}, err
	}

	base, ok := p.visuals.Get(id)
	if !ok {
		base = models.DefaultVisual
	}
	visual := visualFromInput(in, base)
	if visual != base {
		if err := p.visuals.Save(id, visual); err != nil {
			log.Warn().Err(err).Str("category_id", id).Msg("failed to save category visual")
		}
	}

	updated := models.CategoryFromRecord(record, visual, 0)
	p.mu.Lock()
	found := false
	for i, c := range p.categories {
		if c.ID == id {
			p.categories[i] = updated
			found = true
			break
		}
	}
	if !found {
		// Unknown id: the record was loaded elsewhere, keep it visible.
		p.categories = append(p.categories, updated)
	}
	p.recomputePercentagesLocked()
	p.mu.Unlock()

	p.notifier.Success(noticeSource, fmt.Sprintf("Category %q updated", record.Name))
	return updated, nil
}

// Delete removes a category upstream and from memory, and purges its
// now-orphaned visual overlay entry.
func (p *Provider) Delete(ctx context.Context, id string) error {
	env := p.client.DeleteCategory(ctx, id)
	if !env.OK() {
		msg := env.MessageOr("failed to delete category")
		p.setError(msg)
		p.notifier.Error(noticeSource, msg)
		return fmt.Errorf("%w: %s", utils.ErrUpstreamRejected, msg)
	}

	p.mu.Lock()
	for i, c := range p.categories {
		if c.ID == id {
			p.categories = append(p.categories[:i], p.categories[i+1:]...)
			break
		}
	}
	p.recomputePercentagesLocked()
	p.mu.Unlock()

	if err := p.visuals.Remove(id); err != nil {
		log.Warn().Err(err).Str("category_id", id).Msg("failed to purge category visual")
	}

	p.notifier.Success(noticeSource, "Category deleted")
	return nil
}

// Categories returns a copy of the merged in-memory categories.
func (p *Provider) Categories() []models.Category {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.Category, len(p.categories))
	copy(out, p.categories)
	return out
}

// Loading reports whether a load is in flight.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Err returns the user-visible error state, or "".
func (p *Provider) Err() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.errMsg
}

// Totals returns the derived counts over the in-memory state: total product
// count, active categories, empty categories.
func (p *Provider) Totals() (products, active, empty int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.categories {
		products += c.Products
		if c.Status == models.CategoryActive {
			active++
		} else {
			empty++
		}
	}
	return products, active, empty
}

func (p *Provider) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

func (p *Provider) setError(msg string) {
	p.mu.Lock()
	p.errMsg = msg
	p.mu.Unlock()
}

// recomputePercentagesLocked refreshes the percentage display strings after
// any change to the in-memory set. Caller holds the write lock.
func (p *Provider) recomputePercentagesLocked() {
	total := 0
	for _, c := range p.categories {
		total += c.Products
	}
	for i, c := range p.categories {
		percentage := "0%"
		if total > 0 {
			percentage = fmt.Sprintf("%d%%", c.Products*100/total)
		}
		p.categories[i].Percentage = percentage
	}
}

// visualFromInput merges chosen visual fields over a base, field by field, so
// a partial update cannot blank out a previously saved visual.
func visualFromInput(in models.CategoryInput, base models.Visual) models.Visual {
	visual := base
	if in.IconID != "" {
		visual.IconID = in.IconID
	}
	if in.BgClass != "" {
		visual.BgClass = in.BgClass
	}
	if in.ColorValue != "" {
		visual.ColorValue = in.ColorValue
	}
	return visual
}
