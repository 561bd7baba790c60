package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// UI event types pushed to connected clients.
const (
	UIEventSession    = "session"
	UIEventConnection = "connection"
	UIEventScanSaved  = "scan_saved"
	UIEventNavigate   = "navigate"
)

const subscriberBuffer = 16

// UIEvent is one message on the UI stream.
type UIEvent struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// Notifier fans UI events out to subscribers. Slow subscribers drop events
// instead of blocking publishers.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]chan UIEvent
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]chan UIEvent)}
}

// Subscribe registers a new subscriber and returns its id and event channel.
func (n *Notifier) Subscribe() (string, <-chan UIEvent) {
	id := uuid.NewString()
	ch := make(chan UIEvent, subscriberBuffer)

	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()
	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. Unknown ids are ignored.
func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

// Publish delivers e to every subscriber without blocking.
func (n *Notifier) Publish(e UIEvent) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Navigate tells connected UIs to show path.
func (n *Notifier) Navigate(path string) {
	n.Publish(UIEvent{Type: UIEventNavigate, Data: map[string]string{"path": path}})
}

// Close drops every subscriber. Their channels are closed.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
