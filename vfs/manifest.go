package vfs

import (
	"iter"
	"slices"
	"strings"
)

// Manifest is an ordered mapping from dotted (or slashed, for assets) names
// to entries. Iteration follows insertion order.
type Manifest struct {
	// Base is the root package name, empty when the manifest holds several
	// top level names.
	Base    string
	keys    []string
	entries map[string]*Entry
}

func New(base string) *Manifest {
	return &Manifest{
		Base:    base,
		entries: make(map[string]*Entry),
	}
}

// Set adds or replaces name. A replaced name keeps its position.
func (m *Manifest) Set(name string, e *Entry) {
	if _, ok := m.entries[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.entries[name] = e
}

func (m *Manifest) Get(name string) (*Entry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

func (m *Manifest) Has(name string) bool {
	_, ok := m.entries[name]
	return ok
}

func (m *Manifest) Len() int {
	return len(m.keys)
}

// Names returns a copy of the names in order.
func (m *Manifest) Names() []string {
	return slices.Clone(m.keys)
}

// All iterates over the entries in order.
func (m *Manifest) All() iter.Seq2[string, *Entry] {
	return func(yield func(string, *Entry) bool) {
		for _, k := range m.keys {
			if !yield(k, m.entries[k]) {
				return
			}
		}
	}
}

// Filter returns a new manifest with the entries for which keep is true,
// in the same order. Entries are shared, not copied.
func (m *Manifest) Filter(keep func(name string, e *Entry) bool) *Manifest {
	out := New(m.Base)
	for name, e := range m.All() {
		if keep(name, e) {
			out.Set(name, e)
		}
	}
	return out
}

// Owns reports whether name is the manifest's base package or lives
// inside it.
func (m *Manifest) Owns(name string) bool {
	if m.Base == "" {
		return false
	}
	return name == m.Base || strings.HasPrefix(name, m.Base+".") || strings.HasPrefix(name, m.Base+"/")
}

// inferBase returns the first name component shared by every key, or "".
func inferBase(keys []string) string {
	base := ""
	for i, k := range keys {
		first, _, _ := strings.Cut(k, ".")
		first, _, _ = strings.Cut(first, "/")
		if i == 0 {
			base = first
		} else if first != base {
			return ""
		}
	}
	return base
}
