package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/signbridge/internal/app"
	"github.com/ayusman/signbridge/internal/server/api"
	"github.com/ayusman/signbridge/internal/store"
)

// SignStreamHandler answers frames sent over a WebSocket.
//
// Text messages carry the same JSON body as POST /sign-to-text; binary
// messages carry raw encoded image bytes. Every message gets exactly one
// JSON reply shaped like the HTTP response. Failed frames do not close
// the connection.
type SignStreamHandler struct {
	app      *app.App
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
	active sync.WaitGroup
}

// NewSignStreamHandler creates a handler accepting upgrades from allowedOrigin.
// Requests without an Origin header (non-browser clients) are always accepted.
func NewSignStreamHandler(a *app.App, allowedOrigin string) *SignStreamHandler {
	return &SignStreamHandler{
		app:   a,
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "" || origin == allowedOrigin
			},
		},
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SignStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	if !h.track(conn) {
		return
	}
	defer h.untrack(conn)

	conn.SetReadLimit(api.MaxBodyBytes)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}

		var result *app.Result
		switch messageType {
		case websocket.BinaryMessage:
			result, err = h.app.ProcessImage(data, store.SourceWebSocket)
		default:
			result, err = h.app.Process(data, store.SourceWebSocket)
		}
		if err != nil {
			log.Printf("websocket frame failed: %v", err)
		}

		_, response := api.Respond(result, err)
		if err := conn.WriteJSON(response); err != nil {
			log.Printf("websocket write error: %v", err)
			return
		}
	}
}

func (h *SignStreamHandler) track(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = struct{}{}
	h.active.Add(1)
	return true
}

func (h *SignStreamHandler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	h.active.Done()
}

// Close disconnects every stream and waits for in-flight frames to finish.
// Upgrades arriving afterwards are closed immediately.
func (h *SignStreamHandler) Close() {
	h.mu.Lock()
	h.closed = true
	deadline := time.Now().Add(time.Second)
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		conn.Close()
	}
	h.mu.Unlock()

	h.active.Wait()
}
