// Package store is the composition root of the client. A Store owns the
// current item and its id, the autocomplete rank cache and the session, and
// every change to that state goes through its methods.
//
// A Store is driven by one caller at a time. It holds no locks and starts no
// goroutines; callers must not overlap operations on the same instance.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/assettrack/internal/client/credentials"
	"github.com/dmitrijs2005/assettrack/internal/client/items"
	"github.com/dmitrijs2005/assettrack/internal/client/metrics"
	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/client/rankcache"
	"github.com/dmitrijs2005/assettrack/internal/client/repositories/suggestions"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/dmitrijs2005/assettrack/internal/client/session"
	"github.com/dmitrijs2005/assettrack/internal/logging"
)

// Transport is everything the store needs from transport.Client.
type Transport interface {
	session.Transport
	items.Transport
}

// Deps are the collaborators a Store cannot work without.
type Deps struct {
	Transport   Transport
	Credentials credentials.Store
	Logger      logging.Logger
}

type options struct {
	suggestions suggestions.Repository
	metrics     *metrics.Recorder
	clock       func() time.Time
}

type Option func(*options)

// WithSuggestionRepository persists every rank increment and enables Hydrate.
func WithSuggestionRepository(r suggestions.Repository) Option {
	return func(o *options) { o.suggestions = r }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// WithClock is passed on to the session for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

type Store struct {
	log         logging.Logger
	session     *session.Manager
	items       *items.Synchronizer
	ranks       *rankcache.Cache
	suggestions suggestions.Repository

	item   *models.Item
	itemID *int64
}

func New(deps Deps, opts ...Option) *Store {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}

	sessOpts := []session.Option{session.WithMetrics(o.metrics)}
	if o.clock != nil {
		sessOpts = append(sessOpts, session.WithClock(o.clock))
	}
	sess := session.NewManager(deps.Transport, deps.Credentials, log, sessOpts...)

	return &Store{
		log:         log.With("component", "store"),
		session:     sess,
		items:       items.NewSynchronizer(deps.Transport, sess, log, items.WithMetrics(o.metrics)),
		ranks:       rankcache.New(),
		suggestions: o.suggestions,
	}
}

// Login authenticates and, when remember is set, persists the credentials.
func (s *Store) Login(ctx context.Context, username, password string, remember bool) bool {
	return s.session.Login(ctx, username, password, remember)
}

func (s *Store) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

// RestoreSession logs in with remembered credentials, if there are any.
func (s *Store) RestoreSession(ctx context.Context) bool {
	return s.session.RestoreSession(ctx)
}

func (s *Store) Authenticated() bool {
	return s.session.Authenticated()
}

func (s *Store) SessionState() session.State {
	return s.session.State()
}

// AuthToken returns the held token and whether there is one.
func (s *Store) AuthToken() (string, bool) {
	return s.session.Token()
}

// SetAuthToken replaces the token in the session and the transport.
func (s *Store) SetAuthToken(token string) {
	s.session.SetToken(token)
}

func (s *Store) SetAuthenticated(v bool) {
	s.session.SetAuthenticated(v)
}

// GetItem fetches item id. Found replaces the current item and id.
// Missing records id as current and keeps the held item as it was. Failed
// changes nothing.
func (s *Store) GetItem(ctx context.Context, id int64) result.Retrieval {
	outcome, item := s.items.Get(ctx, id)
	r := result.RetrievalOf(outcome)

	switch r {
	case result.Found:
		if item.ID == nil {
			item.ID = models.Ptr(id)
		}
		s.item = item
		s.itemID = models.Ptr(*item.ID)
	case result.Missing:
		s.itemID = models.Ptr(id)
	}
	s.log.Debug(ctx, "get item", "id", id, "result", r.String())
	return r
}

// RegisterItem submits item under the store's tracked id, whatever id the
// argument carries. On success the submitted item, with the id the server
// assigned, becomes current.
func (s *Store) RegisterItem(ctx context.Context, item *models.Item) bool {
	submitted := item.Clone()
	if submitted == nil {
		submitted = &models.Item{}
	}
	submitted.ID = cloneID(s.itemID)

	outcome, id := s.items.Register(ctx, submitted)
	if outcome != result.OK {
		return false
	}

	submitted.ID = models.Ptr(id)
	s.item = submitted
	s.itemID = models.Ptr(id)
	s.log.Info(ctx, "item registered", "id", id)
	return true
}

// UpdateItem submits item as given. On success it becomes the current item
// verbatim.
func (s *Store) UpdateItem(ctx context.Context, item *models.Item) bool {
	submitted := item.Clone()

	if outcome := s.items.Update(ctx, submitted); outcome != result.OK {
		return false
	}

	s.item = submitted
	s.itemID = cloneID(submitted.ID)
	s.log.Info(ctx, "item updated", "id", models.Deref(submitted.ID))
	return true
}

// ListItems fetches every item. The current item is not touched.
func (s *Store) ListItems(ctx context.Context) (result.Outcome, []models.Item) {
	return s.items.List(ctx)
}

// Item returns a copy of the current item, nil if there is none.
func (s *Store) Item() *models.Item {
	return s.item.Clone()
}

// ItemID returns the tracked id.
func (s *Store) ItemID() (int64, bool) {
	if s.itemID == nil {
		return 0, false
	}
	return *s.itemID, true
}

// SetItem replaces the current item with a local draft. The tracked id is
// kept, so a draft started after a Missing lookup registers under that id.
func (s *Store) SetItem(item *models.Item) {
	s.item = item.Clone()
}

// ClearItem forgets the current item and its id.
func (s *Store) ClearItem() {
	s.item = nil
	s.itemID = nil
}

// RankedSuggestions returns the entries for ft, most used first.
func (s *Store) RankedSuggestions(ft rankcache.FieldType) []rankcache.Entry {
	return s.ranks.Ranked(ft)
}

// IncrementRank counts one use of name. With a suggestion repository the
// increment is also written through; a failed write is logged and the
// in-memory rank still counts.
func (s *Store) IncrementRank(ctx context.Context, ft rankcache.FieldType, name string) error {
	if err := s.ranks.Increment(ft, name); err != nil {
		return err
	}
	if s.suggestions != nil {
		if err := s.suggestions.Increment(ctx, ft, name); err != nil {
			s.log.Warn(ctx, "could not persist suggestion", "field", string(ft), "name", name, "error", err)
		}
	}
	return nil
}

// RecordItemRanks counts one use of each ranked field item has a value for.
// Callers run it after a successful register or update. Blank values are
// skipped.
func (s *Store) RecordItemRanks(ctx context.Context, item *models.Item) {
	if item == nil {
		return
	}
	fields := map[rankcache.FieldType]*string{
		rankcache.Category: item.Category,
		rankcache.Brand:    item.Brand,
		rankcache.Model:    item.Model,
		rankcache.Supplier: item.Supplier,
	}
	for _, ft := range rankcache.FieldTypes {
		v := fields[ft]
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		_ = s.IncrementRank(ctx, ft, *v)
	}
}

// Hydrate loads persisted suggestions into the rank cache. Without a
// suggestion repository it does nothing.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.suggestions == nil {
		return nil
	}
	rows, err := s.suggestions.List(ctx)
	if err != nil {
		return fmt.Errorf("load suggestions: %w", err)
	}
	for _, r := range rows {
		if err := s.ranks.Load(r.FieldType, r.Name, r.Rank); err != nil {
			s.log.Warn(ctx, "skipping stored suggestion", "field", string(r.FieldType), "name", r.Name, "error", err)
		}
	}
	s.log.Debug(ctx, "suggestions loaded", "count", len(rows))
	return nil
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	return models.Ptr(*id)
}
