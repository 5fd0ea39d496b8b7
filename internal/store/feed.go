package store

import (
	"sync"
	"time"
)

// Kind names a record table on the change feed.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindBudget      Kind = "budget"
	KindGoal        Kind = "goal"
	KindBill        Kind = "bill"
)

// Op is the write that produced a change.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change announces a committed write.
type Change struct {
	Kind Kind      `json:"kind"`
	Op   Op        `json:"op"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

type feed struct {
	mu        sync.Mutex
	nextSubID int
	subs      map[int]chan Change
	closed    bool
}

func newFeed() *feed {
	return &feed{subs: make(map[int]chan Change)}
}

// Subscribe returns a channel of committed writes and a cancel func.
// Slow subscribers miss changes rather than block writers; callers should
// treat a change as "reload", not as a complete log.
func (s *Store) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Change, buffer)

	f := s.feed
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := f.nextSubID
	f.nextSubID++
	f.subs[id] = ch
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			if sub, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(sub)
			}
			f.mu.Unlock()
		})
	}
}

func (s *Store) publish(kind Kind, op Op, id string) {
	c := Change{Kind: kind, Op: op, ID: id, At: s.now()}

	f := s.feed
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- c:
		default:
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
