package htmltoc

import "fmt"

// DefaultCapacity is the page table size of the generated registry.
const DefaultCapacity = 16

// MaxCapacity bounds configurable capacities.
const MaxCapacity = 4096

// Action handles a request for a page. It reads the request from in, writes
// the response into out and returns the number of bytes written.
type Action func(in []byte, out []byte) int

// Descriptor is one page table entry.
type Descriptor struct {
	Name   string
	Page   []byte
	Size   int
	Action Action // nil until registered
}

// Registry is a fixed-capacity, insertion-ordered page table. It mirrors
// the table generated into webpages.c: Add fails once the table is full,
// Get returns the first entry with a matching name.
type Registry struct {
	capacity int
	pages    []Descriptor
}

// NewRegistry creates an empty registry holding at most capacity pages.
func NewRegistry(capacity int) (*Registry, error) {
	if err := ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Registry{
		capacity: capacity,
		pages:    make([]Descriptor, 0, capacity),
	}, nil
}

// ValidateCapacity checks that capacity is within 1..MaxCapacity.
func ValidateCapacity(capacity int) error {
	if capacity < 1 || capacity > MaxCapacity {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidCapacity, capacity, MaxCapacity)
	}
	return nil
}

// Add appends a page. It returns ErrRegistryFull, leaving the registry
// unchanged, when the capacity is exhausted. Duplicate names are accepted;
// the later entry is unreachable through Get.
func (r *Registry) Add(name string, page []byte, size int) error {
	if len(r.pages) >= r.capacity {
		return fmt.Errorf("%w: limit reached %d, cannot add %q", ErrRegistryFull, r.capacity, name)
	}
	r.pages = append(r.pages, Descriptor{Name: name, Page: page, Size: size})
	return nil
}

// Get returns the first page registered under name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	for i := range r.pages {
		if r.pages[i].Name == name {
			return &r.pages[i], true
		}
	}
	return nil, false
}

// RegisterAction attaches action to the page registered under name. It
// reports whether the action was attached; a missing page or a nil action
// leaves the registry unchanged.
func (r *Registry) RegisterAction(name string, action Action) bool {
	if action == nil {
		return false
	}
	d, ok := r.Get(name)
	if !ok {
		return false
	}
	d.Action = action
	return true
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	return len(r.pages)
}

// Capacity returns the maximum number of pages.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Pages returns a copy of the registered descriptors in insertion order.
func (r *Registry) Pages() []Descriptor {
	out := make([]Descriptor, len(r.pages))
	copy(out, r.pages)
	return out
}
