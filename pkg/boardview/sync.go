package boardview

import (
	"sync"

	"github.com/qnkhuat/chessterm/pkg/model"
)

// Event is anything the UI thread applies to the board. Notifications carry
// the session they were subscribed under so that those of a finished game are
// dropped after a reset.
type Event interface {
	isEvent()
}

type ClickEvent struct {
	Pos model.Position
}

type MoveMadeEvent struct {
	Session  uint64
	Move     model.Move
	Captured []model.Position
}

type SideChangedEvent struct {
	Session uint64
	Side    model.Side
}

type StateChangedEvent struct {
	Session uint64
	State   model.GameState
}

func (ClickEvent) isEvent()        {}
func (MoveMadeEvent) isEvent()     {}
func (SideChangedEvent) isEvent()  {}
func (StateChangedEvent) isEvent() {}

// queue is unbounded so that posting never blocks an engine, AI or network
// goroutine, whatever the UI thread is waiting on
type queue struct {
	mu     sync.Mutex
	events []Event
	ready  chan struct{}
}

func newQueue() *queue {
	return &queue{ready: make(chan struct{}, 1)}
}

func (q *queue) push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *queue) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
