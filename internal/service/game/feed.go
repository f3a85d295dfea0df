package game

import (
	"sync"

	"github.com/hollowgames/whisper-room/backend/internal/model/event"
)

const feedBuffer = 64

// feed fans one session's events out to any number of subscribers (SSE
// streams, websocket connections). Publishing never blocks: a subscriber
// that falls behind its buffer loses events rather than stalling the game.
type feed struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan event.Event
	closed bool
}

func newFeed() *feed {
	return &feed{subs: make(map[int]chan event.Event)}
}

// Subscribe returns a channel of future events and a cancel func. The
// channel is closed on cancel or when the feed shuts down.
func (f *feed) Subscribe() (<-chan event.Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan event.Event, feedBuffer)
	if f.closed {
		close(ch)
		return ch, func() {}
	}

	f.next++
	id := f.next
	f.subs[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
}

func (f *feed) publish(ev event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop.
		}
	}
}

func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
