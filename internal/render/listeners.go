package render

import "slices"

// Listeners is an ordered set of callbacks. Backends use it for every event
// they dispatch. It is not safe for concurrent use.
type Listeners[T any] struct {
	nextID  int
	entries []listener[T]
}

type listener[T any] struct {
	id int
	fn T
}

// Add appends fn and returns a function that removes it. Calling the remover
// more than once is a no-op.
func (l *Listeners[T]) Add(fn T) (remove func()) {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Listeners[T]) remove(id int) {
	l.entries = slices.DeleteFunc(l.entries, func(e listener[T]) bool {
		return e.id == id
	})
}

// Each calls visit for every listener in registration order. Listeners added
// or removed during the walk take effect on the next call.
func (l *Listeners[T]) Each(visit func(fn T)) {
	if len(l.entries) == 0 {
		return
	}
	for _, e := range slices.Clone(l.entries) {
		visit(e.fn)
	}
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	return len(l.entries)
}

// Clear drops every listener.
func (l *Listeners[T]) Clear() {
	l.entries = nil
}
