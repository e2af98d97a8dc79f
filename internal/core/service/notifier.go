package service

import "sync"

// notifier is a minimal publish/subscribe list. Listeners are called
// synchronously, in subscription order, outside the notifier's lock.
type notifier[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []listenerEntry[T]
}

type listenerEntry[T any] struct {
	id int
	fn func(T)
}

// subscribe registers fn and returns a function removing it. The returned
// function may be called any number of times.
func (n *notifier[T]) subscribe(fn func(T)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, listenerEntry[T]{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			for i, l := range n.listeners {
				if l.id == id {
					n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (n *notifier[T]) notify(v T) {
	n.mu.Lock()
	fns := make([]func(T), len(n.listeners))
	for i, l := range n.listeners {
		fns[i] = l.fn
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (n *notifier[T]) clear() {
	n.mu.Lock()
	n.listeners = nil
	n.mu.Unlock()
}
