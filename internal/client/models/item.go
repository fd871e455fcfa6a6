package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a tracked physical asset. A nil pointer means the field has no
// value; ID stays nil until the server has assigned one.
type Item struct {
	ID *int64

	Category *string
	Brand    *string
	Model    *string
	Supplier *string

	SerialNumber *string
	AssetTag     *string

	Location    *string
	SubLocation *string

	Owner        *string
	ContactName  *string
	ContactEmail *string
	ContactPhone *string
	Notes        *string

	PurchaseDate  *time.Time
	PurchasePrice *decimal.Decimal
}

// Clone returns a deep copy so callers never share field storage with the store.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	return &Item{
		ID:            clonePtr(i.ID),
		Category:      clonePtr(i.Category),
		Brand:         clonePtr(i.Brand),
		Model:         clonePtr(i.Model),
		Supplier:      clonePtr(i.Supplier),
		SerialNumber:  clonePtr(i.SerialNumber),
		AssetTag:      clonePtr(i.AssetTag),
		Location:      clonePtr(i.Location),
		SubLocation:   clonePtr(i.SubLocation),
		Owner:         clonePtr(i.Owner),
		ContactName:   clonePtr(i.ContactName),
		ContactEmail:  clonePtr(i.ContactEmail),
		ContactPhone:  clonePtr(i.ContactPhone),
		Notes:         clonePtr(i.Notes),
		PurchaseDate:  clonePtr(i.PurchaseDate),
		PurchasePrice: clonePtr(i.PurchasePrice),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. Handy for filling optional Item fields.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
