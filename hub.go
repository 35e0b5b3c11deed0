package main

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// StatsHub pushes refreshed dashboard stats to connected dashboard
// clients after each stored analysis.
type StatsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewStatsHub() *StatsHub {
	return &StatsHub{clients: make(map[*websocket.Conn]bool)}
}

// Handle serves one dashboard client until it disconnects. Inbound
// frames are discarded; the channel is push-only.
func (h *StatsHub) Handle(c *websocket.Conn) {
	defer func() {
		_ = c.Close()
	}()

	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()
	log.Printf("ws client connected, total=%d", count)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	count = len(h.clients)
	h.mu.Unlock()
	log.Printf("ws client disconnected, total=%d", count)
}

// Broadcast sends the stats to every connected client; clients that
// fail to write are dropped.
func (h *StatsHub) Broadcast(stats DashboardStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteJSON(stats); err != nil {
			log.Printf("ws write failed, dropping client: %v", err)
			_ = c.Close()
			delete(h.clients, c)
		}
	}
}
