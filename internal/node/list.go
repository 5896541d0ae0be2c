package node

import (
	"iter"
	"slices"
)

// List is an immutable ordered sequence of nodes.
//
// The zero value is an empty list. A List owns its backing array: ListOf
// copies its arguments, Append always allocates, and Slice returns a copy,
// so no caller can write through to a list another node still references.
type List[T any] struct {
	items []T
}

// ListOf creates a list holding a copy of items.
func ListOf[T any](items ...T) List[T] {
	if len(items) == 0 {
		return List[T]{}
	}
	return List[T]{items: slices.Clone(items)}
}

// Len returns the number of items.
func (l List[T]) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the list has no items.
func (l List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// At returns the item at index i. Panics if i is out of range.
func (l List[T]) At(i int) T {
	return l.items[i]
}

// All iterates over index/item pairs in order.
func (l List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Values iterates over items in order.
func (l List[T]) Values() iter.Seq[T] {
	return slices.Values(l.items)
}

// Slice returns a copy of the items.
func (l List[T]) Slice() []T {
	return slices.Clone(l.items)
}

// Append returns a new list with items added at the tail.
// The receiver is never modified and never shares writable capacity with
// the result.
func (l List[T]) Append(items ...T) List[T] {
	if len(items) == 0 {
		return l
	}
	out := make([]T, 0, len(l.items)+len(items))
	out = append(out, l.items...)
	out = append(out, items...)
	return List[T]{items: out}
}
