package game

import (
	"encoding/json"
	"sync"

	"hnefatafl/internal/hnefatafl"
)

// Message is one frame of a game's update stream.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is the payload of a "play" message.
type Event struct {
	Play   hnefatafl.Play `json:"play"`
	Update string         `json:"update"`
	State  View           `json:"state"`
}

// Client receives the encoded messages of one game on Send.
type Client struct {
	GameID string
	send   chan []byte
}

func (c *Client) Send() <-chan []byte { return c.send }

// Hub fans game messages out to subscribed clients. Slow clients miss
// messages rather than block the game.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(gameID string) *Client {
	c := &Client{GameID: gameID, send: make(chan []byte, 16)}
	h.mu.Lock()
	if h.clients[gameID] == nil {
		h.clients[gameID] = make(map[*Client]struct{})
	}
	h.clients[gameID][c] = struct{}{}
	h.mu.Unlock()
	return c
}

// Unregister closes the client's channel; it is safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.clients[c.GameID]
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	close(c.send)
	if len(subs) == 0 {
		delete(h.clients, c.GameID)
	}
}

func (h *Hub) Subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[gameID])
}

func (h *Hub) Publish(gameID string, msgType string, payload any) error {
	msg, err := encodeMessage(msgType, payload)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		c.deliver(msg)
	}
	return nil
}

// SendTo delivers a single message to one client, e.g. the state on connect.
func (h *Hub) SendTo(c *Client, msgType string, payload any) error {
	msg, err := encodeMessage(msgType, payload)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.GameID][c]; ok {
		c.deliver(msg)
	}
	return nil
}

func (c *Client) deliver(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

func encodeMessage(msgType string, payload any) ([]byte, error) {
	m := Message{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		m.Payload = raw
	}
	return json.Marshal(m)
}
