// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for epic-export: rows parsed
// from tab-separated export files, the running column order, and the
// configuration structs consumed by the pipeline stages.
package types

// Row is one data line of an export file: a mapping from column name to raw
// string value. A column absent from the map reads as the empty string.
type Row map[string]string

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ColumnSet is an insertion-ordered set of column names. The first file's
// header establishes the base order; later files append any names not yet
// seen. Iteration order is always first-appearance order, which keeps output
// column order deterministic for a given input file sequence.
type ColumnSet struct {
	names []string
	seen  map[string]struct{}
}

// NewColumnSet returns a ColumnSet containing names in the given order.
func NewColumnSet(names ...string) *ColumnSet {
	c := &ColumnSet{seen: make(map[string]struct{})}
	c.Add(names...)
	return c
}

// Add appends any names not already present, preserving encounter order.
func (c *ColumnSet) Add(names ...string) {
	for _, n := range names {
		if _, ok := c.seen[n]; ok {
			continue
		}
		c.seen[n] = struct{}{}
		c.names = append(c.names, n)
	}
}

// Remove deletes name from the set. Removing an absent name is a no-op.
func (c *ColumnSet) Remove(name string) {
	if _, ok := c.seen[name]; !ok {
		return
	}
	delete(c.seen, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

// Contains reports whether name is in the set.
func (c *ColumnSet) Contains(name string) bool {
	_, ok := c.seen[name]
	return ok
}

// Names returns the column names in first-appearance order. The returned
// slice is a copy.
func (c *ColumnSet) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of names in the set.
func (c *ColumnSet) Len() int {
	return len(c.names)
}
