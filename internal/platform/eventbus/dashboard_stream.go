package eventbus

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// DashboardStream fans out published events to connected websocket clients
// watching the live operations dashboard.
type DashboardStream struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewDashboardStream() *DashboardStream {
	return &DashboardStream{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection as a subscriber until it disconnects.
func (s *DashboardStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes a message to every connected client, dropping any that
// fail to write (they will be cleaned up on their next read error).
func (s *DashboardStream) Broadcast(eventName string, payload interface{}) {
	body, err := json.Marshal(struct {
		Name    string      `json:"event_name"`
		Payload interface{} `json:"payload"`
	}{Name: eventName, Payload: payload})
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		_ = conn.WriteMessage(websocket.TextMessage, body)
	}
}
