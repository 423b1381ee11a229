package urn

import (
	"fmt"
	"strings"
)

// Item is one label of a collection together with its available count.
type Item struct {
	Label string
	Count int
}

// Collection is a labeled multiset: each label maps to the number of copies
// available. Labels keep their insertion order so that iteration, and
// therefore evaluation, is deterministic.
type Collection struct {
	labels []string
	counts map[string]int
}

// NewCollection creates a collection from items.
//
// Returns error if a label is repeated or a count is negative.
func NewCollection(items ...Item) (*Collection, error) {
	c := &Collection{counts: make(map[string]int, len(items))}
	for _, it := range items {
		if err := c.Add(it.Label, it.Count); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustCollection is like NewCollection but panics on error.
// Intended for tests and examples with literal collections.
func MustCollection(items ...Item) *Collection {
	c, err := NewCollection(items...)
	if err != nil {
		panic(err)
	}
	return c
}

// Add appends label with count copies to the collection.
func (c *Collection) Add(label string, count int) error {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[label]; ok {
		return ErrRequestInvalid.New(fmt.Sprintf("duplicate item %q in collection", label))
	}
	if count < 0 {
		return ErrRequestInvalid.New(fmt.Sprintf("item %q has negative count %d", label, count))
	}
	c.labels = append(c.labels, label)
	c.counts[label] = count
	return nil
}

// Labels returns the labels in insertion order.
func (c *Collection) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Items returns the collection's items in insertion order.
func (c *Collection) Items() []Item {
	out := make([]Item, len(c.labels))
	for i, label := range c.labels {
		out[i] = Item{Label: label, Count: c.counts[label]}
	}
	return out
}

// Count returns the number of copies of label, or 0 if absent.
func (c *Collection) Count(label string) int {
	return c.counts[label]
}

// Has reports whether label belongs to the collection.
func (c *Collection) Has(label string) bool {
	_, ok := c.counts[label]
	return ok
}

// Len returns the number of distinct labels.
func (c *Collection) Len() int {
	return len(c.labels)
}

// Size returns the total number of copies over all labels.
func (c *Collection) Size() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// String returns the collection as "a=3, b=5".
func (c *Collection) String() string {
	parts := make([]string, len(c.labels))
	for i, label := range c.labels {
		parts[i] = fmt.Sprintf("%s=%d", label, c.counts[label])
	}
	return strings.Join(parts, ", ")
}
