// Package events fans store change notifications out to subscribers.
package events

import "sync"

// Kind identifies what changed.
type Kind int

const (
	SessionChanged Kind = iota + 1
	FeedChanged
)

func (k Kind) String() string {
	switch k {
	case SessionChanged:
		return "session"
	case FeedChanged:
		return "feed"
	default:
		return "unknown"
	}
}

// Event is published after the corresponding durable write succeeded.
// Op names the store operation, e.g. "login" or "like".
type Event struct {
	Kind   Kind
	Op     string
	Target string
}

// Handler receives events synchronously on the publishing goroutine. It must
// not call back into the store that published the event.
type Handler func(Event)

// Bus is a synchronous subscriber list. The zero value is ready to use.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Handler
	order  []int
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]Handler)
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish delivers e to every subscriber in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}
