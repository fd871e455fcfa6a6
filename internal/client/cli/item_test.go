package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/client/rankcache"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formAnswers returns one answer per text field followed by date and price.
func formAnswers(set map[string]string, date, price string) []string {
	answers := make([]string, 0, len(textFields)+2)
	for _, f := range textFields {
		answers = append(answers, set[f.label])
	}
	return append(answers, date, price)
}

func loggedInStore() *fakeStore {
	st := newFakeStore()
	st.loggedIn = true
	return st
}

func TestCommands_RequireLogin(t *testing.T) {
	a, _ := newTestApp(newFakeStore())
	ctx := context.Background()

	assert.ErrorIs(t, a.Get(ctx, "1"), ErrNotLoggedIn)
	assert.ErrorIs(t, a.List(ctx), ErrNotLoggedIn)
	assert.ErrorIs(t, a.New(ctx), ErrNotLoggedIn)
	assert.ErrorIs(t, a.Update(ctx), ErrNotLoggedIn)
}

func TestGet(t *testing.T) {
	st := loggedInStore()
	st.items[7] = &models.Item{ID: models.Ptr(int64(7)), Brand: models.Ptr("Acme"), PurchasePrice: models.Ptr(decimal.RequireFromString("5"))}
	a, out := newTestApp(st)
	ctx := context.Background()

	require.NoError(t, a.Get(ctx, "7"))
	assert.Contains(t, out.String(), "Item #7")
	assert.Contains(t, out.String(), "Acme")
	assert.Contains(t, out.String(), "5.00")

	require.NoError(t, a.Get(ctx, "8"))
	assert.Contains(t, out.String(), "Item #8 is not registered yet")

	assert.ErrorIs(t, a.Get(ctx, "eight"), ErrBadID)

	st.useGetRes, st.getResult = true, result.Failed
	assert.ErrorIs(t, a.Get(ctx, "7"), ErrRemote)
}

func TestList(t *testing.T) {
	st := loggedInStore()
	st.listOut = result.OK
	st.list = []models.Item{{ID: models.Ptr(int64(1)), Brand: models.Ptr("Acme")}}
	a, out := newTestApp(st)

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "#1\t\tAcme\t")

	st.list = nil
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No items")

	st.listOut = result.NetworkUnreachable
	assert.ErrorIs(t, a.List(context.Background()), ErrRemote)
}

func TestNew_RegistersUnderTrackedIDAndRecordsRanks(t *testing.T) {
	st := loggedInStore()
	a, out := newTestApp(st)
	ctx := context.Background()
	require.NoError(t, a.Get(ctx, "8"))

	stubAnswers(t, formAnswers(map[string]string{"Category": "Laptop", "Brand": "Acme"}, "2024-01-31", "25")...)

	require.NoError(t, a.New(ctx))

	want := &models.Item{
		Category:      models.Ptr("Laptop"),
		Brand:         models.Ptr("Acme"),
		PurchaseDate:  models.Ptr(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		PurchasePrice: models.Ptr(decimal.RequireFromString("25")),
	}
	require.Len(t, st.registered, 1)
	if diff := cmp.Diff(want, st.registered[0]); diff != "" {
		t.Errorf("registered item mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, st.recorded, 1)
	assert.Contains(t, out.String(), "Registering as #8")
	assert.Contains(t, out.String(), "Registered item #8")
}

func TestNew_FailureDoesNotRecordRanks(t *testing.T) {
	st := loggedInStore()
	st.remoteOK = false
	a, _ := newTestApp(st)
	stubAnswers(t, formAnswers(map[string]string{"Brand": "Acme"}, "", "")...)

	assert.ErrorIs(t, a.New(context.Background()), ErrRemote)
	assert.Empty(t, st.recorded)
}

func TestUpdate_KeepsClearsAndReplacesFields(t *testing.T) {
	st := loggedInStore()
	st.items[2] = &models.Item{
		ID:           models.Ptr(int64(2)),
		Brand:        models.Ptr("Acme"),
		Model:        models.Ptr("X1"),
		Notes:        models.Ptr("old note"),
		PurchaseDate: models.Ptr(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)),
	}
	a, _ := newTestApp(st)
	ctx := context.Background()
	require.NoError(t, a.Get(ctx, "2"))

	stubAnswers(t, formAnswers(map[string]string{"Model": "X2", "Notes": "-"}, "", "19.9")...)

	require.NoError(t, a.Update(ctx))

	want := &models.Item{
		ID:            models.Ptr(int64(2)),
		Brand:         models.Ptr("Acme"),
		Model:         models.Ptr("X2"),
		PurchaseDate:  models.Ptr(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)),
		PurchasePrice: models.Ptr(decimal.RequireFromString("19.9")),
	}
	require.Len(t, st.updated, 1)
	if diff := cmp.Diff(want, st.updated[0]); diff != "" {
		t.Errorf("updated item mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "old note", models.Deref(st.items[2].Notes), "form must not touch the fetched item")
	require.Len(t, st.recorded, 1)
}

func TestUpdate_NeedsCurrentItem(t *testing.T) {
	a, _ := newTestApp(loggedInStore())
	assert.ErrorIs(t, a.Update(context.Background()), ErrNoCurrentItem)
}

func TestFillItem_RetriesBadDateAndPrice(t *testing.T) {
	a, out := newTestApp(loggedInStore())
	stubAnswers(t, append(formAnswers(nil, "31/01/2024", "lots"), "2024-01-31", "-", "")...)

	// The date prompt rejects two answers before it accepts the third.
	item, err := a.fillItem(&models.Item{PurchasePrice: models.Ptr(decimal.RequireFromString("3"))})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-31", item.PurchaseDate.Format("2006-01-02"))
	assert.Nil(t, item.PurchasePrice)
	assert.Contains(t, out.String(), "Not a date, try again")
}

func TestSuggest(t *testing.T) {
	st := newFakeStore()
	for _, n := range []string{"Acme", "Zeta", "Zeta", "Apex"} {
		require.NoError(t, st.ranks.Increment(rankcache.Brand, n))
	}
	a, out := newTestApp(st)

	require.NoError(t, a.Suggest(context.Background(), "brand", ""))
	assert.Equal(t, "Zeta (2)\nAcme (1)\nApex (1)\n", out.String())

	out.Reset()
	require.NoError(t, a.Suggest(context.Background(), "brand", "ap"))
	assert.Equal(t, "Apex (1)\n", out.String())

	out.Reset()
	require.NoError(t, a.Suggest(context.Background(), "model", ""))
	assert.Equal(t, "No suggestions\n", out.String())

	assert.ErrorIs(t, a.Suggest(context.Background(), "colour", ""), rankcache.ErrUnknownFieldType)
}

func TestSuggestionHintInPrompt(t *testing.T) {
	st := newFakeStore()
	require.NoError(t, st.ranks.Increment(rankcache.Brand, "Acme"))
	a, _ := newTestApp(st)

	assert.Equal(t, "{Acme}", a.suggestionHint(rankcache.Brand))
	assert.Empty(t, a.suggestionHint(rankcache.Model))
	assert.Equal(t, "Brand [Acme]", fieldPrompt("Brand", models.Ptr("Acme")))
}

func TestStatus(t *testing.T) {
	st := loggedInStore()
	st.items[3] = &models.Item{ID: models.Ptr(int64(3)), Category: models.Ptr("Desk")}
	a, out := newTestApp(st)

	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, out.String(), "No current item")

	require.NoError(t, a.Get(context.Background(), "3"))
	out.Reset()
	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, out.String(), "(online #3)")
	assert.Contains(t, out.String(), "Desk")
}
