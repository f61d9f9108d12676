package listing

import "github.com/google/uuid"

// Keyed is anything a list can identify by primary key.
type Keyed interface {
	Key() uuid.UUID
}

// List is an ordered collection of unique items plus the total count
// reported by the store. Total is -1 while unknown.
type List[T Keyed] struct {
	items []T
	seen  map[uuid.UUID]struct{}
	total int64
}

func NewList[T Keyed]() List[T] {
	return List[T]{seen: map[uuid.UUID]struct{}{}, total: -1}
}

// Replace drops the current items and keeps the given ones.
func (l *List[T]) Replace(items []T) {
	l.items = nil
	l.seen = make(map[uuid.UUID]struct{}, len(items))
	l.Append(items)
}

// Append adds items in order, skipping ids already present.
// It returns how many were added.
func (l *List[T]) Append(items []T) int {
	if l.seen == nil {
		l.seen = map[uuid.UUID]struct{}{}
	}
	added := 0
	for _, item := range items {
		if _, ok := l.seen[item.Key()]; ok {
			continue
		}
		l.seen[item.Key()] = struct{}{}
		l.items = append(l.items, item)
		added++
	}
	return added
}

// Remove records one row deleted from the store: the item is dropped if
// loaded, and a known total is decremented either way, never below zero.
// It reports whether the item was loaded.
func (l *List[T]) Remove(id uuid.UUID) bool {
	if l.total > 0 {
		l.total--
	}
	if _, ok := l.seen[id]; !ok {
		return false
	}
	delete(l.seen, id)
	for i, item := range l.items {
		if item.Key() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	return true
}

func (l *List[T]) Clear() {
	l.items = nil
	l.seen = map[uuid.UUID]struct{}{}
	l.total = -1
}

func (l *List[T]) SetTotal(total int64) {
	l.total = total
}

func (l *List[T]) Total() int64 {
	return l.total
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}
