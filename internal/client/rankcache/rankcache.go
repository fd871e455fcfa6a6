// Package rankcache keeps per-field usage counters for autocomplete
// suggestions.
//
// Entries are held in insertion order per field type, so a stable sort by
// descending rank gives the first-inserted entry precedence on ties without
// any extra bookkeeping.
package rankcache

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownFieldType = errors.New("unknown field type")

// FieldType is one of the descriptive item fields that get suggestions.
type FieldType string

const (
	Category FieldType = "category"
	Brand    FieldType = "brand"
	Model    FieldType = "model"
	Supplier FieldType = "supplier"
)

// FieldTypes lists every FieldType in a fixed order.
var FieldTypes = []FieldType{Category, Brand, Model, Supplier}

// Valid reports whether ft belongs to the closed set.
func (ft FieldType) Valid() bool {
	switch ft {
	case Category, Brand, Model, Supplier:
		return true
	}
	return false
}

// ParseFieldType accepts a field type name in any case.
func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(strings.ToLower(strings.TrimSpace(s)))
	if !ft.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, s)
	}
	return ft, nil
}

// Entry is a suggestion and how many times it has been used.
type Entry struct {
	Name string
	Rank int
}

type names struct {
	index   map[string]int
	entries []Entry
}

// Cache maps field type -> entry name -> rank. The zero value is not usable;
// call New.
type Cache struct {
	fields map[FieldType]*names
}

func New() *Cache {
	return &Cache{fields: make(map[FieldType]*names, len(FieldTypes))}
}

// Ranked returns every entry for ft, highest rank first, ties in the order
// the names were first seen. The slice is a copy.
func (c *Cache) Ranked(ft FieldType) []Entry {
	n, ok := c.fields[ft]
	if !ok {
		return []Entry{}
	}
	out := make([]Entry, len(n.entries))
	copy(out, n.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}

// Increment records one use of name. An unseen name starts at rank 1. The
// empty string is a valid name; callers filter blanks if they need to.
func (c *Cache) Increment(ft FieldType, name string) error {
	if !ft.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFieldType, ft)
	}
	n := c.field(ft)
	if i, ok := n.index[name]; ok {
		n.entries[i].Rank++
		return nil
	}
	n.index[name] = len(n.entries)
	n.entries = append(n.entries, Entry{Name: name, Rank: 1})
	return nil
}

// Load seeds an entry with a known rank, used when rehydrating from
// storage. Seeding an existing name keeps its position and takes the larger
// rank, so ranks never go down.
func (c *Cache) Load(ft FieldType, name string, rank int) error {
	if !ft.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFieldType, ft)
	}
	if rank < 0 {
		rank = 0
	}
	n := c.field(ft)
	if i, ok := n.index[name]; ok {
		if rank > n.entries[i].Rank {
			n.entries[i].Rank = rank
		}
		return nil
	}
	n.index[name] = len(n.entries)
	n.entries = append(n.entries, Entry{Name: name, Rank: rank})
	return nil
}

// Rank returns the current rank of name, 0 if unseen.
func (c *Cache) Rank(ft FieldType, name string) int {
	n, ok := c.fields[ft]
	if !ok {
		return 0
	}
	i, ok := n.index[name]
	if !ok {
		return 0
	}
	return n.entries[i].Rank
}

func (c *Cache) field(ft FieldType) *names {
	n, ok := c.fields[ft]
	if !ok {
		n = &names{index: make(map[string]int)}
		c.fields[ft] = n
	}
	return n
}

// Suggest narrows a ranked list for display. An empty query yields the top
// limit entries; otherwise every entry whose name contains the query,
// case-insensitively, in ranked order. limit <= 0 means no cap.
func Suggest(ranked []Entry, query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Entry, 0, len(ranked))
	if q == "" {
		out = append(out, ranked...)
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return out
	}

	for _, e := range ranked {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}
