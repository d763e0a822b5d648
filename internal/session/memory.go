package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// MemoryHub is an in-process stand-in for the shared storage: every client
// handle sees the same entries, and a mutation is broadcast to every handle
// except the one that made it. Used by tests and by dev runs without Redis.
type MemoryHub struct {
	mu       sync.Mutex
	entries  map[string]string
	watchers map[*memoryWatcher]struct{}
}

type memoryWatcher struct {
	origin string
	ch     chan Change
	done   chan struct{}
}

// NewMemoryHub creates an empty hub.
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{
		entries:  make(map[string]string),
		watchers: make(map[*memoryWatcher]struct{}),
	}
}

// Client returns a new storage handle with its own origin identity.
func (h *MemoryHub) Client() Storage {
	return &memoryStorage{hub: h, origin: uuid.NewString()}
}

func (h *MemoryHub) get(key string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	value, ok := h.entries[key]
	return value, ok
}

func (h *MemoryHub) set(key, value, origin string) {
	h.mu.Lock()
	previous, existed := h.entries[key]
	h.entries[key] = value
	h.mu.Unlock()

	// No notification when nothing changed, matching browser storage events.
	if existed && previous == value {
		return
	}
	h.broadcast(Change{Key: key, Value: value, Present: true, Origin: origin})
}

func (h *MemoryHub) delete(key, origin string) {
	h.mu.Lock()
	_, existed := h.entries[key]
	delete(h.entries, key)
	h.mu.Unlock()

	if !existed {
		return
	}
	h.broadcast(Change{Key: key, Present: false, Origin: origin})
}

func (h *MemoryHub) watch(ctx context.Context, origin string) chan Change {
	w := &memoryWatcher{origin: origin, ch: make(chan Change, 16), done: make(chan struct{})}
	h.mu.Lock()
	h.watchers[w] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.watchers, w)
		h.mu.Unlock()
		close(w.done)
	}()
	return w.ch
}

// broadcast delivers outside the lock with a blocking send, so a live
// watcher never loses a change; a canceled watcher is skipped via done.
func (h *MemoryHub) broadcast(change Change) {
	h.mu.Lock()
	targets := make([]*memoryWatcher, 0, len(h.watchers))
	for w := range h.watchers {
		if w.origin == change.Origin {
			continue
		}
		targets = append(targets, w)
	}
	h.mu.Unlock()

	for _, w := range targets {
		select {
		case w.ch <- change:
		case <-w.done:
		}
	}
}

type memoryStorage struct {
	hub    *MemoryHub
	origin string
	closed bool
}

func (m *memoryStorage) Origin() string { return m.origin }

func (m *memoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := m.hub.get(key)
	return value, ok, nil
}

func (m *memoryStorage) Set(ctx context.Context, key, value string) error {
	if m.closed {
		return errors.New("storage closed")
	}
	m.hub.set(key, value, m.origin)
	return nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	if m.closed {
		return errors.New("storage closed")
	}
	m.hub.delete(key, m.origin)
	return nil
}

func (m *memoryStorage) Watch(ctx context.Context) (<-chan Change, error) {
	return m.hub.watch(ctx, m.origin), nil
}

func (m *memoryStorage) Ping(ctx context.Context) error { return nil }

func (m *memoryStorage) Close() error {
	m.closed = true
	return nil
}
