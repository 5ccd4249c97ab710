package object

// Store is an insertion-ordered collection of live entities.
// Membership is liveness: an entity removed from every store it belongs to is gone.
type Store[T Entity] struct {
	items []T
}

// NewStore creates an empty store.
func NewStore[T Entity]() *Store[T] {
	return &Store[T]{}
}

// Add appends an entity. Adding an id that is already present is a no-op.
func (s *Store[T]) Add(item T) {
	if s.Contains(item.ID()) {
		return
	}
	s.items = append(s.items, item)
}

// Remove deletes the entity with the given id. Returns false if it was not present.
func (s *Store[T]) Remove(id uint64) bool {
	for i, item := range s.items {
		if item.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether an entity with the given id is present.
func (s *Store[T]) Contains(id uint64) bool {
	for _, item := range s.items {
		if item.ID() == id {
			return true
		}
	}
	return false
}

// Len returns the number of live entities.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// All returns a copy of the entities, safe to range over while removing.
func (s *Store[T]) All() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Reset removes every entity and returns what was removed.
func (s *Store[T]) Reset() []T {
	removed := s.items
	s.items = nil
	return removed
}
