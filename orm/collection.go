// Package orm provides the keyed model collection backing read-mostly
// stores like the design catalog: map access by ID with optional stable
// iteration order, built once and swapped atomically by the owner.
package orm

import (
	"encoding/json/v2"
)

type Identifiable[ID comparable] interface {
	GetID() ID
}

// Collection - models keyed by ID. An ordered collection additionally
// remembers insertion order; Items/IDs/ForEach then follow it.
type Collection[MP Identifiable[ID], ID comparable] struct {
	itemsMap   map[ID]MP
	orderedIDs []ID // nil = unordered
}

func NewEmptyOrderedCollection[
P Identifiable[ID],
ID comparable,
]() *Collection[P, ID] {
	return &Collection[P, ID]{
		itemsMap:   make(map[ID]P),
		orderedIDs: make([]ID, 0),
	}
}

func NewOrderedCollection[
P Identifiable[ID],
ID comparable,
](items []P) *Collection[P, ID] {
	coll := &Collection[P, ID]{
		itemsMap:   make(map[ID]P, len(items)),
		orderedIDs: make([]ID, 0, len(items)),
	}
	for _, item := range items {
		coll.Add(item)
	}
	return coll
}

func NewUnorderedCollection[
P Identifiable[ID],
ID comparable,
](items []P) *Collection[P, ID] {
	coll := &Collection[P, ID]{
		itemsMap: make(map[ID]P, len(items)),
	}
	for _, item := range items {
		coll.itemsMap[item.GetID()] = item
	}
	return coll
}

func (c *Collection[MP, ID]) Len() int {
	return len(c.itemsMap)
}

func (c *Collection[MP, ID]) Has(id ID) bool {
	_, ok := c.itemsMap[id]
	return ok
}

func (c *Collection[MP, ID]) Find(id ID) (MP, bool) {
	p, ok := c.itemsMap[id]
	return p, ok
}

// Add inserts or replaces by ID. Replacing keeps the original position
// in an ordered collection.
func (c *Collection[MP, ID]) Add(item MP) {
	id := item.GetID()
	_, already := c.itemsMap[id]
	c.itemsMap[id] = item
	if c.orderedIDs != nil && !already {
		c.orderedIDs = append(c.orderedIDs, id)
	}
}

func (c *Collection[MP, ID]) IDs() []ID {
	if c.orderedIDs != nil {
		return append([]ID(nil), c.orderedIDs...)
	}
	ids := make([]ID, 0, len(c.itemsMap))
	for id := range c.itemsMap {
		ids = append(ids, id)
	}
	return ids
}

func (c *Collection[MP, ID]) Items() []MP {
	if c.orderedIDs != nil {
		items := make([]MP, 0, len(c.orderedIDs))
		for _, id := range c.orderedIDs {
			items = append(items, c.itemsMap[id])
		}
		return items
	}
	items := make([]MP, 0, len(c.itemsMap))
	for _, item := range c.itemsMap {
		items = append(items, item)
	}
	return items
}

// MarshalJSON renders the collection as its item array.
func (c *Collection[MP, ID]) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Items())
}

// ForEach calls fn for every model, in insertion order when the
// collection has one.
func (c *Collection[MP, ID]) ForEach(fn func(MP)) {
	if c.orderedIDs != nil {
		for _, id := range c.orderedIDs {
			fn(c.itemsMap[id])
		}
		return
	}
	for _, mp := range c.itemsMap {
		fn(mp)
	}
}

// Filter returns a new collection holding the models fn accepts,
// preserving orderedness.
func (c *Collection[MP, ID]) Filter(fn func(MP) bool) *Collection[MP, ID] {
	filtered := &Collection[MP, ID]{
		itemsMap: make(map[ID]MP, len(c.itemsMap)),
	}
	if c.orderedIDs != nil {
		filtered.orderedIDs = make([]ID, 0, len(c.orderedIDs))
		for _, id := range c.orderedIDs {
			item := c.itemsMap[id]
			if fn(item) {
				filtered.itemsMap[id] = item
				filtered.orderedIDs = append(filtered.orderedIDs, id)
			}
		}
		return filtered
	}
	for id, item := range c.itemsMap {
		if fn(item) {
			filtered.itemsMap[id] = item
		}
	}
	return filtered
}
