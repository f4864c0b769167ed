package typeinfo

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Dispatcher renders a value given its handle. Composite formatters use it
// to hand their elements back to the registry.
type Dispatcher interface {
	Dispatch(h Handle, v any) (string, error)
}

// Formatter renders an instance of the type it is attached to.
type Formatter func(d Dispatcher, v any) (string, error)

// Registry maps Go types to handles and handles to formatters.
type Registry struct {
	mu sync.RWMutex

	// Maps Go type to its entry
	byType map[reflect.Type]*entry

	// Maps uniform name to its entry
	byName map[string]*entry

	// Formatting behavior per entry, absent when none was attached
	formatters map[*entry]Formatter

	// Counter for handle ids
	nextID uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:     make(map[reflect.Type]*entry),
		byName:     make(map[string]*entry),
		formatters: make(map[*entry]Formatter),
	}
}

// Default is the process-wide registry. Builtin types are announced into
// it at init.
var Default = NewRegistry()

func init() {
	if err := RegisterBuiltins(Default); err != nil {
		panic(err)
	}
}

// AnnounceType creates the handle for t under name. Announcing the same
// type with the same name again returns the existing handle.
func (r *Registry) AnnounceType(t reflect.Type, name string) (Handle, error) {
	if t == nil {
		return Handle{}, fmt.Errorf("%w: nil type", ErrInvalidName)
	}
	if !strings.HasPrefix(name, "@") || len(name) < 2 {
		return Handle{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, exists := r.byType[t]; exists {
		if e.name != name {
			return Handle{}, fmt.Errorf("%w: %v already announced as %s", ErrNameConflict, t, e.name)
		}
		return Handle{e: e}, nil
	}
	if e, exists := r.byName[name]; exists {
		return Handle{}, fmt.Errorf("%w: %s already used by %v", ErrNameConflict, name, e.typ)
	}

	r.nextID++
	e := &entry{id: r.nextID, name: name, typ: t}
	r.byType[t] = e
	r.byName[name] = e

	return Handle{e: e}, nil
}

// HandleFor returns the handle announced for t.
func (r *Registry) HandleFor(t reflect.Type) (Handle, error) {
	r.mu.RLock()
	e, exists := r.byType[t]
	r.mu.RUnlock()

	if !exists {
		return Handle{}, &TypeNotRegisteredError{Type: t}
	}
	return Handle{e: e}, nil
}

// HandleByName returns the handle announced under a uniform name.
func (r *Registry) HandleByName(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.byName[name]
	if !exists {
		return Handle{}, false
	}
	return Handle{e: e}, true
}

// NameOf returns the uniform name announced for t.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, exists := r.byType[t]; exists {
		return e.name, true
	}
	return "", false
}

// SetFormatter attaches f to h. The handle must belong to r.
func (r *Registry) SetFormatter(h Handle, f Formatter) error {
	if !h.Valid() || f == nil {
		return ErrInvalidHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byType[h.e.typ] != h.e {
		return fmt.Errorf("%w: %s belongs to another registry", ErrInvalidHandle, h.e.name)
	}
	r.formatters[h.e] = f
	return nil
}

// FormatterFor returns the formatter attached to h.
func (r *Registry) FormatterFor(h Handle) (Formatter, bool) {
	if !h.Valid() {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.formatters[h.e]
	return f, exists
}

// Count returns the number of announced types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}

// Entries returns a snapshot sorted by uniform name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.byType))
	for _, e := range r.byType {
		_, hasFormatter := r.formatters[e]
		entries = append(entries, Entry{
			ID:           e.id,
			Name:         e.name,
			Type:         e.typ.String(),
			HasFormatter: hasFormatter,
		})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
