package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"lakesideBack/internal/models"
)

const (
	wsWriteDeadline = 5 * time.Second
	wsReadDeadline  = 120 * time.Second
	wsPingInterval  = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type adminEvent struct {
	Type   string        `json:"type"`
	Review models.Review `json:"review"`
}

// AdminHub pushes new-review events to connected admin dashboards so the
// moderation queue updates without polling. All operations on clients
// happen on the Run goroutine.
type AdminHub struct {
	clients    map[*websocket.Conn]struct{}
	broadcast  chan adminEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn

	errorLog *log.Logger
}

func NewAdminHub(errorLog *log.Logger) *AdminHub {
	return &AdminHub{
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan adminEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		errorLog:   errorLog,
	}
}

func (h *AdminHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = struct{}{}
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				conn.Close()
				delete(h.clients, conn)
			}
		case event := <-h.broadcast:
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := conn.WriteJSON(event); err != nil {
					h.errorLog.Printf("admin ws: write failed: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// BroadcastNewReview satisfies notify.Broadcaster. Never blocks: if the
// hub is backed up the event is dropped, the dashboard catches up on the
// next refresh.
func (h *AdminHub) BroadcastNewReview(rev models.Review) {
	select {
	case h.broadcast <- adminEvent{Type: "new_review", Review: rev}:
	default:
		h.errorLog.Println("admin ws: broadcast queue full, event dropped")
	}
}

func (h *AdminHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.errorLog.Printf("admin ws: upgrade failed: %v", err)
		return
	}

	h.register <- conn

	go h.readLoop(conn)
	go h.pingLoop(conn)
}

// readLoop drains control frames and detects the peer going away.
func (h *AdminHub) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister <- conn
			return
		}
	}
}

func (h *AdminHub) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for range ticker.C {
		conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteDeadline)); err != nil {
			return
		}
	}
}

// wsTicket issues a short-lived token for the dashboard WebSocket. Browsers
// cannot set an Authorization header on an upgrade request, so the client
// fetches a ticket over the authenticated API and passes it as a query
// parameter instead.
func (app *application) wsTicket(w http.ResponseWriter, r *http.Request) {
	adminID, _ := r.Context().Value("admin_id").(int)

	ticket, err := app.tokens.NewJWT(strconv.Itoa(adminID), time.Minute)
	if err != nil {
		app.serverError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"ticket": ticket})
}

func (app *application) serveAdminWS(w http.ResponseWriter, r *http.Request) {
	if _, err := app.tokens.Parse(r.URL.Query().Get("ticket")); err != nil {
		http.Error(w, "Invalid or expired ticket", http.StatusUnauthorized)
		return
	}
	app.adminHub.ServeWS(w, r)
}
