package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/client/rankcache"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/dmitrijs2005/assettrack/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Store is the subset of store.Store the CLI drives.
type Store interface {
	Login(ctx context.Context, username, password string, remember bool) bool
	Logout(ctx context.Context)
	Authenticated() bool

	GetItem(ctx context.Context, id int64) result.Retrieval
	RegisterItem(ctx context.Context, item *models.Item) bool
	UpdateItem(ctx context.Context, item *models.Item) bool
	ListItems(ctx context.Context) (result.Outcome, []models.Item)
	Item() *models.Item
	ItemID() (int64, bool)
	ClearItem()

	RankedSuggestions(ft rankcache.FieldType) []rankcache.Entry
	RecordItemRanks(ctx context.Context, item *models.Item)
}

type App struct {
	store    Store
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	userName string
	metrics  prometheus.Gatherer
}

type Option func(*App)

// WithMetrics lets the metrics command read the remote call counters from g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(a *App) { a.metrics = g }
}

func NewApp(st Store, in io.Reader, out io.Writer, log logging.Logger, opts ...Option) *App {
	a := &App{
		store:  st,
		log:    log.With("component", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run greets the user and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "AssetTrack CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) status() string {
	s := "anonymous"
	if a.isLoggedIn() {
		s = "online"
		if a.userName != "" {
			s = a.userName + " " + s
		}
	}
	if id, ok := a.store.ItemID(); ok {
		s = fmt.Sprintf("%s #%d", s, id)
	}
	return "(" + s + ")"
}

// Status prints the session state and the current item.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintln(a.out, "Session:", a.status())
	if item := a.store.Item(); item != nil {
		printItem(a.out, item)
	} else {
		fmt.Fprintln(a.out, "No current item")
	}
	return nil
}
