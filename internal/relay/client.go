package relay

import (
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"CollabBoard/internal/state"
)

// Bridge is the client side of the relay: it subscribes to one
// document's topic and hands received elements to a callback. Publish
// failures are logged and the edit stays local.
type Bridge struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}

	// OnElement receives every remote draw event. Set before Run.
	OnElement func(state.Element)
	// OnPresence receives join announcements for the collaborator
	// chips. Optional.
	OnPresence func(Presence)
}

// Dial connects to a hub at addr (host:port) and subscribes to the
// document's topic.
func Dial(addr, docID string) (*Bridge, error) {
	url := fmt.Sprintf("ws://%s/ws/%s", addr, docID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", url, err)
	}
	return &Bridge{conn: conn, done: make(chan struct{})}, nil
}

// Run pumps incoming messages until the connection drops or Close is
// called. Call it on its own goroutine.
func (b *Bridge) Run() {
	defer close(b.done)
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			log.Printf("[relay] subscription closed: %v", err)
			return
		}
		msg, err := decodeMessage(data)
		if err != nil {
			log.Printf("[relay] bad message, skipping: %v", err)
			continue
		}
		switch msg.Event {
		case EventDraw:
			if msg.Payload != nil && b.OnElement != nil {
				b.OnElement(*msg.Payload)
			}
		case EventJoin:
			if msg.Presence != nil && b.OnPresence != nil {
				b.OnPresence(*msg.Presence)
			}
		}
	}
}

// Publish broadcasts a committed element to the other subscribers.
func (b *Bridge) Publish(e state.Element) error {
	data, err := encodeMessage(Message{Event: EventDraw, Payload: &e})
	if err != nil {
		return fmt.Errorf("encode draw: %w", err)
	}
	return b.write(data)
}

// Announce publishes this participant's presence info.
func (b *Bridge) Announce(p Presence) error {
	data, err := encodeMessage(Message{Event: EventJoin, Presence: &p})
	if err != nil {
		return fmt.Errorf("encode join: %w", err)
	}
	return b.write(data)
}

func (b *Bridge) write(data []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.conn.WriteMessage(websocket.TextMessage, data)
}

// Close tears the subscription down. Errors are swallowed: there is no
// reconnect logic, and a failed unsubscribe leaves nothing to clean up.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		_ = b.conn.Close()
	})
}

// Done is closed once the read loop has exited.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}
