package staticvec

import (
	"iter"
	"slices"
)

// All yields index/element pairs from front to back. v must not be modified
// during iteration.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.storage.At(i)) {
				return
			}
		}
	}
}

// Values yields the elements from front to back.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.storage.At(i)) {
				return
			}
		}
	}
}

// Backward yields index/element pairs from back to front. v must not be
// modified during iteration.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, *v.storage.At(i)) {
				return
			}
		}
	}
}

// Equal reports whether a and b have the same capacity, the same length and
// pairwise equal elements.
func Equal[T comparable](a, b *Vector[T]) bool {
	return a.Cap() == b.Cap() && slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	return a.Cap() == b.Cap() && slices.EqualFunc(a.Slice(), b.Slice(), eq)
}
