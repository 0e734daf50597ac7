package property

import (
	"sync"

	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// Scope names the entity kind a property store is indexed over, used only
// for error messages (the store's behavior is otherwise scope-agnostic).
type Scope string

const (
	ScopeGraph        Scope = "graph"
	ScopeNode         Scope = "node"
	ScopeRelationship Scope = "relationship"
)

type entry struct {
	descriptor Descriptor
	values     Values
}

// Store is an insertion-order-irrelevant mapping from property key to
// (descriptor, values). Built stores are immutable and safe for concurrent
// reads from many goroutines, matching the graph store's post-build
// sharing discipline.
type Store struct {
	scope   Scope
	entries map[string]entry
}

func (s *Store) Get(key string) (Descriptor, Values, bool) {
	e, ok := s.entries[key]
	if !ok {
		return Descriptor{}, nil, false
	}
	return e.descriptor, e.values, true
}

func (s *Store) Contains(key string) bool {
	_, ok := s.entries[key]
	return ok
}

func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Len() int { return len(s.entries) }

func (s *Store) Scope() Scope { return s.scope }

// ToBuilder returns a Builder pre-seeded with this store's entries, for
// callers that materialize an overlay rather than mutating in place (the
// graph store itself is never mutated after construction).
func (s *Store) ToBuilder() *Builder {
	b := NewBuilder(s.scope)
	for k, e := range s.entries {
		b.entries[k] = e
	}
	return b
}

// Builder accumulates (descriptor, values) pairs before an invariant-checked
// Build(). Its methods are serialized by an internal mutex, so concurrent
// calls are safe.
type Builder struct {
	scope   Scope
	entries map[string]entry
	mu      sync.Mutex
}

func NewBuilder(scope Scope) *Builder {
	return &Builder{scope: scope, entries: make(map[string]entry)}
}

// Put inserts or replaces the property at key.
func (b *Builder) Put(key string, descriptor Descriptor, values Values) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = entry{descriptor: descriptor, values: values}
}

// PutIfAbsent inserts only if key is not already present, returning false
// (and leaving the existing entry untouched) if it was.
func (b *Builder) PutIfAbsent(key string, descriptor Descriptor, values Values) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.entries[key]; exists {
		return false
	}
	b.entries[key] = entry{descriptor: descriptor, values: values}
	return true
}

func (b *Builder) Remove(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, key)
}

// Build validates every entry against the invariants in §4.4 — value type
// matches descriptor, element_count equals the owning store's entity count
// — and returns an immutable Store, or the first violation found.
func (b *Builder) Build(entityCount int) (*Store, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, e := range b.entries {
		if key == "" {
			return nil, apperrors.New(apperrors.CodeInvariantViolation, "property key must not be empty")
		}
		if e.values.ValueType() != e.descriptor.ValueType {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch,
				"property %q: values type %s does not match descriptor type %s",
				key, e.values.ValueType(), e.descriptor.ValueType)
		}
		if e.values.Len() != entityCount {
			return nil, apperrors.Newf(apperrors.CodeInvariantViolation,
				"property %q: element count %d does not match %s entity count %d",
				key, e.values.Len(), b.scope, entityCount)
		}
	}

	out := make(map[string]entry, len(b.entries))
	for k, v := range b.entries {
		out[k] = v
	}
	return &Store{scope: b.scope, entries: out}, nil
}
