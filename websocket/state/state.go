package state

import (
	"sort"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one open feed connection. Writes to Conn must hold ConnMu.
type Client struct {
	ID      string
	Subject string
	Conn    *websocket.Conn
	ConnMu  sync.Mutex
}

type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

func (r *Registry) Register(id, subject string, conn *websocket.Conn) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := &Client{
		ID:      id,
		Subject: subject,
		Conn:    conn,
	}
	r.clients[id] = c
	return c
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, id)
}

// All returns a snapshot ordered by client id.
func (r *Registry) All() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}
