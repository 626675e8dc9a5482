package catalog

// Store is a read snapshot of the design catalog.
type Store interface {
	Find(id string) (*Design, error)
	All() []*Design
	Len() int
}
