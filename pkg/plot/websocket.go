package plot

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raykavin/plotkit/pkg/logger"
)

// writeWait bounds every write so a stalled browser cannot hold the hub
const writeWait = 10 * time.Second

// Message types pushed to browsers
const (
	MessageHello    = "hello"
	MessageRendered = "rendered"
)

// Message is one notification sent over the websocket
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type renderNotice struct {
	Title    string    `json:"title"`
	Overlays int       `json:"overlays"`
	Series   int       `json:"series"`
	Updated  time.Time `json:"updated"`
}

// hub tells connected browsers when a new render is available. Clients
// fetch /data again on every "rendered" message.
type hub struct {
	sync.RWMutex
	clients       map[*websocket.Conn]struct{}
	upgrader      websocket.Upgrader
	broadcastChan chan Message
	done          chan struct{}
	closeOnce     sync.Once
	log           logger.Logger
}

func newHub(log logger.Logger) *hub {
	h := &hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		broadcastChan: make(chan Message, 16),
		done:          make(chan struct{}),
		log:           log,
	}

	go h.handleBroadcasts()

	return h
}

func (h *hub) handleBroadcasts() {
	for {
		select {
		case <-h.done:
			h.disconnectAll()
			return
		case msg := <-h.broadcastChan:
			// writes happen outside the lock so new clients can register meanwhile
			for _, conn := range h.snapshot() {
				if err := write(conn, msg); err != nil {
					h.log.Error("Error sending WebSocket message: ", err)
					// the reader of this connection unregisters it
					conn.Close()
				}
			}
		}
	}
}

func (h *hub) snapshot() []*websocket.Conn {
	h.RLock()
	defer h.RUnlock()

	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	return conns
}

func (h *hub) disconnectAll() {
	h.Lock()
	defer h.Unlock()

	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "chart closed"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}

func write(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

// publish queues msg for every client, dropping it when the queue is full
// or the hub is closed
func (h *hub) publish(msg Message) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcastChan <- msg:
	default:
		h.log.Warn("WebSocket queue full, dropping ", msg.Type)
	}
}

// close stops the broadcast loop and disconnects every client. Safe to
// call more than once.
func (h *hub) close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// clientCount reports the number of connected browsers
func (h *hub) clientCount() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.clients)
}

func (h *hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection to WebSocket: ", err)
		return
	}

	// the hello goes out under the write lock so no broadcast can interleave,
	// and a client that read it is known to be registered
	h.Lock()
	select {
	case <-h.done:
		err = websocket.ErrCloseSent
	default:
		err = write(conn, Message{Type: MessageHello})
		if err == nil {
			h.clients[conn] = struct{}{}
		}
	}
	h.Unlock()

	if err != nil {
		h.log.Error("Error sending WebSocket hello: ", err)
		conn.Close()
		return
	}

	h.log.Debug("WebSocket client connected, total: ", h.clientCount())
	go h.handleClient(conn)
}

// handleClient drains the connection until the browser leaves
func (h *hub) handleClient(conn *websocket.Conn) {
	defer func() {
		h.Lock()
		delete(h.clients, conn)
		h.Unlock()
		conn.Close()
		h.log.Debug("WebSocket client disconnected, remaining: ", h.clientCount())
	}()

	conn.SetPingHandler(func(string) error {
		return conn.WriteControl(websocket.PongMessage, []byte{}, time.Now().Add(writeWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Error("WebSocket read error: ", err)
			}
			return
		}
	}
}
