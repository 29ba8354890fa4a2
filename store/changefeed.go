package store

import "sync"

// Event describes a committed change in one of the store collections.
// Events are published only after the underlying write has committed, so a
// subscriber can never observe a half-written record.
type Event struct {
	Collection string `json:"collection"` // "orders", "menuItems", "sales"
	Action     string `json:"action"`     // "created", "updated", "deleted"
	ID         string `json:"id"`
}

// Feed is an in-process change feed with explicit subscribe/unsubscribe.
type Feed struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func newFeed() *Feed {
	return &Feed{subs: make(map[int]chan Event)}
}

// Subscribe registers a consumer. The returned cancel func must be called to
// release the subscription; it is safe to call more than once.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan Event, 32)
	f.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish fans the event out without blocking; a subscriber that has fallen
// 32 events behind misses this one.
func (f *Feed) publish(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
