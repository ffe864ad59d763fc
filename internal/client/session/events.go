package session

import (
	"sync"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

type EventKind int

const (
	EventLogin EventKind = iota + 1
	EventRefresh
	EventLogout
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventRefresh:
		return "refresh"
	case EventLogout:
		return "logout"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event announces a session change. User is the new snapshot for login
// and refresh, and zero otherwise.
type Event struct {
	Kind EventKind
	User models.User
}

// Authenticated reports whether a session exists after the event.
func (e Event) Authenticated() bool {
	return e.Kind == EventLogin || e.Kind == EventRefresh
}

// broadcaster fans events out to subscribers in subscription order.
type broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
	order  []int
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]func(Event))}
}

func (b *broadcaster) subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
			b.mu.Unlock()
		})
	}
}

// publish calls listeners without holding the lock, so a listener may
// subscribe, unsubscribe or trigger another publish.
func (b *broadcaster) publish(e Event) {
	b.mu.RLock()
	ids := append([]int(nil), b.order...)
	b.mu.RUnlock()

	for _, id := range ids {
		b.mu.RLock()
		fn, ok := b.subs[id]
		b.mu.RUnlock()
		if ok {
			fn(e)
		}
	}
}
