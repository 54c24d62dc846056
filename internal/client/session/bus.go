package session

import "sync"

// Bus is the process-wide logout broadcast. Components that have no
// reference to the session manager (notably the HTTP transport) announce
// termination here; the manager subscribes once and clears its state.
//
// Announcements carry no payload and are safe to repeat: logging out an
// already-anonymous session is a no-op.
type Bus struct {
	mu        sync.Mutex
	listeners []func()
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn to run on every subsequent announcement.
func (b *Bus) Subscribe(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// AnnounceLogout notifies every listener. Listeners run synchronously, in
// subscription order, outside the bus lock.
func (b *Bus) AnnounceLogout() {
	b.mu.Lock()
	listeners := make([]func(), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
