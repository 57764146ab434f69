package relay

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub is the host-side relay: one topic per document id, and every
// message from one subscriber is forwarded verbatim to all the others
// on the same topic. There is no authoritative merge here — the hub
// never inspects payloads beyond routing.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	topics   map[string]map[*subscriber]bool
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// LAN peers connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		topics: make(map[string]map[*subscriber]bool),
	}
}

// Listen binds the relay endpoint and serves it on a background
// goroutine. The listener is bound before Listen returns, so a dial
// straight afterwards cannot race the server startup.
func (h *Hub) Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/ws/", h)
	go func() {
		if err := http.Serve(ln, mux); err != nil {
			log.Printf("[relay] server stopped: %v", err)
		}
	}()
	return ln, nil
}

// ServeHTTP upgrades /ws/{docID} requests and pumps messages. It is
// the http.Handler for the whole relay endpoint.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	docID := strings.TrimPrefix(r.URL.Path, "/ws/")
	if docID == "" || strings.Contains(docID, "/") {
		http.Error(w, "missing document id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[relay] upgrade failed: %v", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, 64)}
	h.subscribe(docID, sub)
	log.Printf("[relay] %s joined %s", conn.RemoteAddr(), docID)

	go sub.writeLoop()
	h.readLoop(docID, sub)
}

func (h *Hub) subscribe(docID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[docID] == nil {
		h.topics[docID] = make(map[*subscriber]bool)
	}
	h.topics[docID][sub] = true
}

func (h *Hub) unsubscribe(docID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.topics[docID]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.topics, docID)
		}
	}
	close(sub.send)
}

func (h *Hub) readLoop(docID string, sub *subscriber) {
	defer func() {
		h.unsubscribe(docID, sub)
		sub.conn.Close()
		log.Printf("[relay] %s left %s", sub.conn.RemoteAddr(), docID)
	}()
	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}
		h.broadcast(docID, data, sub)
	}
}

// broadcast relays to every subscriber of the topic except the sender.
// A subscriber with a full queue is skipped rather than blocking the
// relay; its edits stay local until it catches up.
func (h *Hub) broadcast(docID string, data []byte, from *subscriber) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[docID] {
		if sub == from {
			continue
		}
		select {
		case sub.send <- data:
		default:
			log.Printf("[relay] dropping message for slow subscriber on %s", docID)
		}
	}
}

// Subscribers reports the live subscriber count of a topic.
func (h *Hub) Subscribers(docID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[docID])
}

func (s *subscriber) writeLoop() {
	for data := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
