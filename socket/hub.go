package socket

import (
	"context"
	"encoding/json"
	"sync"

	"notesapi/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	ConnectedType    = "CONNECTED"     // Sent once the client is registered
	NotesChangedType = "NOTES_CHANGED" // The set of notes visible to the user changed
)

type WSMessage struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// Hub fans visibility events out to every open connection of the affected
// user. Rooms are keyed by user id.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
}

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	UserID string
	Send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan WSMessage, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is done, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.UserID] == nil {
				h.Rooms[client.UserID] = make(map[*Client]bool)
			}
			h.Rooms[client.UserID][client] = true
			h.mu.Unlock()

			hello, _ := json.Marshal(WSMessage{Type: ConnectedType, UserID: client.UserID})
			client.Send <- hello

		case client := <-h.Unregister:
			h.remove(client)

		case msg := <-h.Broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}

			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[msg.UserID]))
			for client := range h.Rooms[msg.UserID] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					logger.Sugar.Warnf("Client %s's send buffer is full. Dropping connection.", client.UserID)
					h.remove(client)
					client.Conn.Close()
				}
			}
		}
	}
}

// NotifyUser matches visibility.Listener. It never blocks the caller; when
// the hub is saturated the event is dropped, since clients refetch anyway.
func (h *Hub) NotifyUser(_ context.Context, userID string) {
	select {
	case h.Broadcast <- WSMessage{Type: NotesChangedType, UserID: userID}:
	default:
		logger.Sugar.Warnf("Hub broadcast queue full, dropping notification for user %s", userID)
	}
}

// Connections reports how many sockets userID currently holds open.
func (h *Hub) Connections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Rooms[userID])
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.Rooms[client.UserID][client]; !ok {
		return
	}
	delete(h.Rooms[client.UserID], client)
	close(client.Send)
	if len(h.Rooms[client.UserID]) == 0 {
		delete(h.Rooms, client.UserID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.Rooms {
		for client := range clients {
			close(client.Send)
			client.Conn.Close()
		}
		delete(h.Rooms, userID)
	}
}
