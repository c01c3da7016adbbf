package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

// FeedMessage is the envelope pushed to websocket subscribers: "event" for
// each simulation tick, "report" for full-time summaries.
type FeedMessage struct {
	Kind    string       `json:"kind"`
	MatchID int          `json:"match_id"`
	Event   *EventRecord `json:"event,omitempty"`
	Report  *MatchReport `json:"report,omitempty"`
}

type feedClient struct {
	hub  *FeedHub
	conn *websocket.Conn
	send chan []byte
	// matchIDs restricts delivery; empty means everything.
	matchIDs map[int]bool
}

func (c *feedClient) shouldReceive(msg *FeedMessage) bool {
	if len(c.matchIDs) == 0 {
		return true
	}
	return c.matchIDs[msg.MatchID]
}

// FeedHub fans live match events out to websocket clients. Slow clients are
// dropped rather than allowed to stall the broadcast loop.
type FeedHub struct {
	clients    map[*feedClient]bool
	broadcast  chan *FeedMessage
	register   chan *feedClient
	unregister chan *feedClient
	mu         sync.RWMutex
}

func newFeedHub() *FeedHub {
	return &FeedHub{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan *FeedMessage, 256),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

// Run is the hub loop; call it in its own goroutine.
func (h *FeedHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logInfo("📡 Feed client connected, %d total", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logInfo("📡 Feed client disconnected, %d total", h.clientCount())

		case msg := <-h.broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logInfo("⚠️  Dropping unencodable feed message: %v", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if !client.shouldReceive(msg) {
					continue
				}
				select {
				case client.send <- payload:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *FeedHub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastEvent pushes one simulation tick.
func (h *FeedHub) BroadcastEvent(matchID int, ev *SimulationEvent) {
	rec := recordOf(ev)
	select {
	case h.broadcast <- &FeedMessage{Kind: "event", MatchID: matchID, Event: &rec}:
	default:
		// feed is best-effort; never block the simulation
	}
}

// BroadcastReport pushes a full-time summary.
func (h *FeedHub) BroadcastReport(report *MatchReport) {
	select {
	case h.broadcast <- &FeedMessage{Kind: "report", MatchID: report.MatchID, Report: report}:
	default:
	}
}

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleFeed upgrades /ws connections. A "match" query parameter narrows the
// stream to one match.
func (h *FeedHub) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logInfo("⚠️  Feed upgrade failed: %v", err)
		return
	}

	client := &feedClient{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 64),
		matchIDs: make(map[int]bool),
	}
	for _, raw := range r.URL.Query()["match"] {
		if id, err := strconv.Atoi(raw); err == nil {
			client.matchIDs[id] = true
		}
	}

	h.register <- client
	go client.writePump()
	go client.readPump()
}

func (c *feedClient) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	// Clients are listen-only; reads exist to notice disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
