package cli

import (
	"context"

	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/client/rankcache"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
)

type loginCall struct {
	user, pass string
	remember   bool
}

type fakeStore struct {
	loginOK  bool
	logins   []loginCall
	logouts  int
	loggedIn bool

	items     map[int64]*models.Item
	getResult result.Retrieval
	useGetRes bool
	remoteOK  bool
	nextID    int64

	registered []*models.Item
	updated    []*models.Item
	recorded   []*models.Item
	list       []models.Item
	listOut    result.Outcome

	item   *models.Item
	itemID *int64
	ranks  *rankcache.Cache
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		loginOK:  true,
		items:    map[int64]*models.Item{},
		remoteOK: true,
		nextID:   100,
		ranks:    rankcache.New(),
	}
}

func (f *fakeStore) Login(_ context.Context, u, p string, remember bool) bool {
	f.logins = append(f.logins, loginCall{u, p, remember})
	f.loggedIn = f.loginOK
	return f.loginOK
}

func (f *fakeStore) Logout(context.Context) { f.logouts++; f.loggedIn = false }
func (f *fakeStore) Authenticated() bool    { return f.loggedIn }

func (f *fakeStore) GetItem(_ context.Context, id int64) result.Retrieval {
	if f.useGetRes {
		return f.getResult
	}
	it, ok := f.items[id]
	if !ok {
		f.itemID = models.Ptr(id)
		return result.Missing
	}
	f.item = it.Clone()
	f.itemID = models.Ptr(id)
	return result.Found
}

func (f *fakeStore) RegisterItem(_ context.Context, item *models.Item) bool {
	f.registered = append(f.registered, item.Clone())
	if !f.remoteOK {
		return false
	}
	id := f.nextID
	if f.itemID != nil {
		id = *f.itemID
	}
	f.item = item.Clone()
	f.item.ID = models.Ptr(id)
	f.itemID = models.Ptr(id)
	return true
}

func (f *fakeStore) UpdateItem(_ context.Context, item *models.Item) bool {
	f.updated = append(f.updated, item.Clone())
	if !f.remoteOK {
		return false
	}
	f.item = item.Clone()
	return true
}

func (f *fakeStore) ListItems(context.Context) (result.Outcome, []models.Item) {
	return f.listOut, f.list
}

func (f *fakeStore) Item() *models.Item { return f.item.Clone() }

func (f *fakeStore) ItemID() (int64, bool) {
	if f.itemID == nil {
		return 0, false
	}
	return *f.itemID, true
}

func (f *fakeStore) ClearItem() { f.item, f.itemID = nil, nil }

func (f *fakeStore) RankedSuggestions(ft rankcache.FieldType) []rankcache.Entry {
	return f.ranks.Ranked(ft)
}

func (f *fakeStore) RecordItemRanks(_ context.Context, item *models.Item) {
	f.recorded = append(f.recorded, item.Clone())
}
