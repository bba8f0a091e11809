package remote

import "sync"

// Notifier fans session-change events out to registered subscribers.
// Client implementations embed it to provide OnAuthChange.
//
// Callbacks run synchronously on the goroutine that emits the event;
// subscribers must not block.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]AuthChangeFunc
}

// OnAuthChange registers fn and returns a function that removes the
// registration. Unsubscribing twice is harmless.
func (n *Notifier) OnAuthChange(fn AuthChangeFunc) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]AuthChangeFunc)
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Emit delivers event and session to every current subscriber.
func (n *Notifier) Emit(event AuthEvent, session *Session) {
	n.mu.Lock()
	fns := make([]AuthChangeFunc, 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(event, session)
	}
}
