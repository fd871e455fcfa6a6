package items

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/common"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire form of a purchase date.
const DateLayout = "2006-01-02"

// minPriceDecimals is the least number of fractional digits sent for a price.
const minPriceDecimals = 2

// Wire is the cleaned, transmittable form of an item. Nil fields are left
// out of the JSON entirely instead of being sent as null.
type Wire struct {
	ID *int64 `json:"id,omitempty"`

	Category *string `json:"category,omitempty"`
	Brand    *string `json:"brand,omitempty"`
	Model    *string `json:"model,omitempty"`
	Supplier *string `json:"supplier,omitempty"`

	SerialNumber *string `json:"serialNumber,omitempty"`
	AssetTag     *string `json:"assetTag,omitempty"`

	Location    *string `json:"location,omitempty"`
	SubLocation *string `json:"subLocation,omitempty"`

	Owner        *string `json:"owner,omitempty"`
	ContactName  *string `json:"contactName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	PurchaseDate  *string     `json:"purchaseDate,omitempty"`
	PurchasePrice json.Number `json:"purchasePrice,omitempty"`
}

// Clean converts item to its wire form: the purchase date loses its time of
// day and the price carries at least two decimals.
func Clean(item *models.Item) Wire {
	if item == nil {
		return Wire{}
	}
	w := Wire{
		ID:           item.ID,
		Category:     item.Category,
		Brand:        item.Brand,
		Model:        item.Model,
		Supplier:     item.Supplier,
		SerialNumber: item.SerialNumber,
		AssetTag:     item.AssetTag,
		Location:     item.Location,
		SubLocation:  item.SubLocation,
		Owner:        item.Owner,
		ContactName:  item.ContactName,
		ContactEmail: item.ContactEmail,
		ContactPhone: item.ContactPhone,
		Notes:        item.Notes,
	}
	if item.PurchaseDate != nil {
		d := item.PurchaseDate.Format(DateLayout)
		w.PurchaseDate = &d
	}
	if item.PurchasePrice != nil {
		w.PurchasePrice = json.Number(FormatPrice(*item.PurchasePrice))
	}
	return w
}

// FormatPrice renders d with at least two decimals. Extra precision is kept.
func FormatPrice(d decimal.Decimal) string {
	places := int32(minPriceDecimals)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}

// payload is an item as the service returns it. Prices may arrive as JSON
// numbers or strings; decimal accepts both.
type payload struct {
	ID *int64 `json:"id"`

	Category *string `json:"category"`
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	Supplier *string `json:"supplier"`

	SerialNumber *string `json:"serialNumber"`
	AssetTag     *string `json:"assetTag"`

	Location    *string `json:"location"`
	SubLocation *string `json:"subLocation"`

	Owner        *string `json:"owner"`
	ContactName  *string `json:"contactName"`
	ContactEmail *string `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone"`
	Notes        *string `json:"notes"`

	PurchaseDate  *string          `json:"purchaseDate"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
}

func (p payload) item() (*models.Item, error) {
	it := &models.Item{
		ID:            p.ID,
		Category:      p.Category,
		Brand:         p.Brand,
		Model:         p.Model,
		Supplier:      p.Supplier,
		SerialNumber:  p.SerialNumber,
		AssetTag:      p.AssetTag,
		Location:      p.Location,
		SubLocation:   p.SubLocation,
		Owner:         p.Owner,
		ContactName:   p.ContactName,
		ContactEmail:  p.ContactEmail,
		ContactPhone:  p.ContactPhone,
		Notes:         p.Notes,
		PurchasePrice: p.PurchasePrice,
	}
	if p.PurchaseDate != nil && *p.PurchaseDate != "" {
		t, err := parseDate(*p.PurchaseDate)
		if err != nil {
			return nil, err
		}
		it.PurchaseDate = &t
	}
	return it, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: purchase date %q", common.ErrMalformedResponse, s)
	}
	return t, nil
}

// decodeItem parses a single item object.
func decodeItem(body []byte) (*models.Item, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, fmt.Errorf("%w: expected an item object", common.ErrMalformedResponse)
	}
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return p.item()
}

// decodeList parses an array of items.
func decodeList(body []byte) ([]models.Item, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: expected an item array", common.ErrMalformedResponse)
	}
	var ps []payload
	if err := json.Unmarshal(body, &ps); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	out := make([]models.Item, 0, len(ps))
	for _, p := range ps {
		it, err := p.item()
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, nil
}

// decodeID accepts a bare JSON number or an object with an "id" field.
func decodeID(body []byte) (int64, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return 0, fmt.Errorf("%w: empty body", common.ErrMalformedResponse)
	}

	var raw json.Number
	if body[0] == '{' {
		var obj struct {
			ID json.Number `json:"id"`
		}
		if err := json.Unmarshal(body, &obj); err != nil {
			return 0, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
		}
		raw = obj.ID
	} else if err := json.Unmarshal(body, &raw); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	id, err := raw.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", common.ErrMalformedResponse, raw.String())
	}
	return id, nil
}
