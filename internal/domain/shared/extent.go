package shared

import (
	"reflect"
	"sync"
)

// Extent is the ordered, process-wide collection of every live instance of a
// class. Members are only ever appended; the whole collection can be reset.
//
// The registry is single-threaded by contract. The mutex only keeps the
// backing slice consistent if that contract is broken.
type Extent[T any] struct {
	mu     sync.RWMutex
	domain string
	items  []T
}

// NewExtent creates an empty extent. domain names the owning class in errors.
func NewExtent[T any](domain string) *Extent[T] {
	return &Extent[T]{domain: domain}
}

// Add appends v. A nil member is rejected with ErrValidation.
func (e *Extent[T]) Add(v T) error {
	return e.AddUnique(v, nil)
}

// AddUnique appends v unless a member already satisfies same. A nil member
// and a duplicate are both rejected with ErrValidation. A nil same accepts
// every member.
func (e *Extent[T]) AddUnique(v T, same func(T) bool) error {
	if isNil(v) {
		return NewValidationError(e.domain, "AddToExtent", "", ErrNilValue, e.domain+" cannot be nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if same != nil {
		for _, item := range e.items {
			if same(item) {
				return NewValidationError(e.domain, "AddToExtent", "", ErrAlreadyExists,
					e.domain+" is already in the extent")
			}
		}
	}
	e.items = append(e.items, v)
	return nil
}

// Len returns the number of members.
func (e *Extent[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.items)
}

// Reset drops every member.
func (e *Extent[T]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
}

// Snapshot returns a copy of the members in insertion order.
func (e *Extent[T]) Snapshot() []T {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

// View returns a read-only view over the extent. The view observes later
// appends and resets.
func (e *Extent[T]) View() View[T] {
	return View[T]{extent: e}
}

// View is a read-only window over an Extent. Every mutating method fails
// with ErrReadOnly and leaves the extent untouched.
type View[T any] struct {
	extent *Extent[T]
}

// Len returns the number of members.
func (v View[T]) Len() int {
	if v.extent == nil {
		return 0
	}
	return v.extent.Len()
}

// At returns the i-th member in insertion order. ok is false when i is out
// of range.
func (v View[T]) At(i int) (item T, ok bool) {
	if v.extent == nil {
		return item, false
	}
	v.extent.mu.RLock()
	defer v.extent.mu.RUnlock()
	if i < 0 || i >= len(v.extent.items) {
		return item, false
	}
	return v.extent.items[i], true
}

// Items returns a copy of the members. Changing the copy does not affect
// the extent.
func (v View[T]) Items() []T {
	if v.extent == nil {
		return nil
	}
	return v.extent.Snapshot()
}

// Contains reports whether match returns true for any member.
func (v View[T]) Contains(match func(T) bool) bool {
	for _, item := range v.Items() {
		if match(item) {
			return true
		}
	}
	return false
}

// Add always fails: the view is read-only.
func (v View[T]) Add(T) error {
	return v.readOnly("Add")
}

// RemoveAt always fails: the view is read-only.
func (v View[T]) RemoveAt(int) error {
	return v.readOnly("RemoveAt")
}

// Set always fails: the view is read-only.
func (v View[T]) Set(int, T) error {
	return v.readOnly("Set")
}

// Clear always fails: the view is read-only.
func (v View[T]) Clear() error {
	return v.readOnly("Clear")
}

func (v View[T]) readOnly(op string) error {
	domain := "extent"
	if v.extent != nil {
		domain = v.extent.domain
	}
	return NewDomainError(domain, op, ErrReadOnly, "extent view is read-only")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
