package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/assettrack/internal/client/items"
	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/client/rankcache"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/shopspring/decimal"
)

// clearValue entered in a form empties the field.
const clearValue = "-"

const suggestionsShown = 5

var (
	ErrBadID         = errors.New("item id must be a whole number")
	ErrNoCurrentItem = errors.New("no current item, use get <id> first")
	ErrRemote        = errors.New("the item service did not accept the request")
)

type textField struct {
	label string
	field rankcache.FieldType
	ref   func(*models.Item) **string
}

var textFields = []textField{
	{label: "Category", field: rankcache.Category, ref: func(i *models.Item) **string { return &i.Category }},
	{label: "Brand", field: rankcache.Brand, ref: func(i *models.Item) **string { return &i.Brand }},
	{label: "Model", field: rankcache.Model, ref: func(i *models.Item) **string { return &i.Model }},
	{label: "Supplier", field: rankcache.Supplier, ref: func(i *models.Item) **string { return &i.Supplier }},
	{label: "Serial number", ref: func(i *models.Item) **string { return &i.SerialNumber }},
	{label: "Asset tag", ref: func(i *models.Item) **string { return &i.AssetTag }},
	{label: "Location", ref: func(i *models.Item) **string { return &i.Location }},
	{label: "Sub-location", ref: func(i *models.Item) **string { return &i.SubLocation }},
	{label: "Owner", ref: func(i *models.Item) **string { return &i.Owner }},
	{label: "Contact name", ref: func(i *models.Item) **string { return &i.ContactName }},
	{label: "Contact email", ref: func(i *models.Item) **string { return &i.ContactEmail }},
	{label: "Contact phone", ref: func(i *models.Item) **string { return &i.ContactPhone }},
	{label: "Notes", ref: func(i *models.Item) **string { return &i.Notes }},
}

// Get fetches an item by id and makes it current.
func (a *App) Get(ctx context.Context, idArg string) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return ErrBadID
	}

	switch a.store.GetItem(ctx, id) {
	case result.Found:
		printItem(a.out, a.store.Item())
	case result.Missing:
		fmt.Fprintf(a.out, "Item #%d is not registered yet. Use 'new' to register it.\n", id)
	default:
		return ErrRemote
	}
	return nil
}

// List prints a one-line summary of every item.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}
	outcome, list := a.store.ListItems(ctx)
	if outcome != result.OK {
		return fmt.Errorf("%w (%s)", ErrRemote, outcome)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No items")
		return nil
	}
	for _, it := range list {
		fmt.Fprintf(a.out, "#%d\t%s\t%s\t%s\n", models.Deref(it.ID),
			models.Deref(it.Category), models.Deref(it.Brand), models.Deref(it.Model))
	}
	return nil
}

// New registers an item typed in by the user. It is registered under the
// tracked id, which is set by a previous get that found nothing.
func (a *App) New(ctx context.Context) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}
	if id, ok := a.store.ItemID(); ok {
		fmt.Fprintf(a.out, "Registering as #%d\n", id)
	}

	item, err := a.fillItem(&models.Item{})
	if err != nil {
		return err
	}
	if !a.store.RegisterItem(ctx, item) {
		return ErrRemote
	}
	a.store.RecordItemRanks(ctx, item)

	id, _ := a.store.ItemID()
	fmt.Fprintf(a.out, "Registered item #%d\n", id)
	return nil
}

// Update edits the current item and sends it back.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}
	current := a.store.Item()
	if current == nil || current.ID == nil {
		return ErrNoCurrentItem
	}

	item, err := a.fillItem(current)
	if err != nil {
		return err
	}
	if !a.store.UpdateItem(ctx, item) {
		return ErrRemote
	}
	a.store.RecordItemRanks(ctx, item)

	fmt.Fprintf(a.out, "Updated item #%d\n", *item.ID)
	return nil
}

// Suggest prints the most used values for a field, optionally filtered.
func (a *App) Suggest(ctx context.Context, field, query string) error {
	ft, err := rankcache.ParseFieldType(field)
	if err != nil {
		return err
	}
	entries := rankcache.Suggest(a.store.RankedSuggestions(ft), query, suggestionsShown)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No suggestions")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s (%d)\n", e.Name, e.Rank)
	}
	return nil
}

// fillItem walks the user through every field of base. An empty answer
// keeps the shown value and "-" clears it. base is not modified.
func (a *App) fillItem(base *models.Item) (*models.Item, error) {
	item := base.Clone()

	for _, f := range textFields {
		ptr := f.ref(item)
		prompt := fieldPrompt(f.label, *ptr)
		if f.field != "" {
			if hint := a.suggestionHint(f.field); hint != "" {
				prompt += " " + hint
			}
		}
		answer, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return nil, err
		}
		switch answer {
		case "":
		case clearValue:
			*ptr = nil
		default:
			*ptr = models.Ptr(answer)
		}
	}

	if err := a.fillDate(item); err != nil {
		return nil, err
	}
	if err := a.fillPrice(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (a *App) fillDate(item *models.Item) error {
	var current *string
	if item.PurchaseDate != nil {
		current = models.Ptr(item.PurchaseDate.Format(items.DateLayout))
	}
	for {
		answer, err := getSimpleText(a.reader, fieldPrompt("Purchase date (YYYY-MM-DD)", current), a.out)
		if err != nil {
			return err
		}
		switch answer {
		case "":
			return nil
		case clearValue:
			item.PurchaseDate = nil
			return nil
		}
		t, err := time.Parse(items.DateLayout, answer)
		if err != nil {
			fmt.Fprintln(a.out, "Not a date, try again")
			continue
		}
		item.PurchaseDate = &t
		return nil
	}
}

func (a *App) fillPrice(item *models.Item) error {
	var current *string
	if item.PurchasePrice != nil {
		current = models.Ptr(items.FormatPrice(*item.PurchasePrice))
	}
	for {
		answer, err := getSimpleText(a.reader, fieldPrompt("Purchase price", current), a.out)
		if err != nil {
			return err
		}
		switch answer {
		case "":
			return nil
		case clearValue:
			item.PurchasePrice = nil
			return nil
		}
		d, err := decimal.NewFromString(answer)
		if err != nil {
			fmt.Fprintln(a.out, "Not a price, try again")
			continue
		}
		item.PurchasePrice = &d
		return nil
	}
}

func (a *App) suggestionHint(ft rankcache.FieldType) string {
	entries := rankcache.Suggest(a.store.RankedSuggestions(ft), "", suggestionsShown)
	if len(entries) == 0 {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func fieldPrompt(label string, current *string) string {
	if current == nil {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, *current)
}

func printItem(w io.Writer, item *models.Item) {
	if item == nil {
		return
	}
	if item.ID != nil {
		fmt.Fprintf(w, "Item #%d\n", *item.ID)
	} else {
		fmt.Fprintln(w, "Item (not registered)")
	}
	for _, f := range textFields {
		if v := *f.ref(item); v != nil {
			fmt.Fprintf(w, "  %-14s %s\n", f.label+":", *v)
		}
	}
	if item.PurchaseDate != nil {
		fmt.Fprintf(w, "  %-14s %s\n", "Purchased:", item.PurchaseDate.Format(items.DateLayout))
	}
	if item.PurchasePrice != nil {
		fmt.Fprintf(w, "  %-14s %s\n", "Price:", items.FormatPrice(*item.PurchasePrice))
	}
}
