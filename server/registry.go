package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/undeconstructed/quintet/comms"
)

// clientBundle is one connected player's outbound side. Messages go
// into downCh and a per-connection goroutine drains them onto the
// socket, so nothing here ever blocks on the network.
type clientBundle struct {
	connID uuid.UUID
	player int
	downCh chan comms.Message
	log    zerolog.Logger
}

// registry maps seats to connections. It has its own lock, separate
// from the game state lock; everything done under either is a channel
// send at worst, sockets are written elsewhere.
type registry struct {
	mu      sync.RWMutex
	clients map[int]*clientBundle
}

func newRegistry() *registry {
	return &registry{clients: map[int]*clientBundle{}}
}

func (r *registry) add(c *clientBundle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.player] = c
}

// remove drops the seat's connection and closes its channel. Sends all
// happen under the read lock, so after this returns nothing can write
// to the closed channel.
func (r *registry) remove(player int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[player]
	if !ok {
		return
	}
	delete(r.clients, player)
	close(c.downCh)
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *registry) seated() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.clients))
	for p := range r.clients {
		out = append(out, p)
	}
	return out
}

func (r *registry) broadcast(msg comms.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		c.send(msg)
	}
}

func (r *registry) unicast(player int, msg comms.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.clients[player]; ok {
		c.send(msg)
	}
}

func (c *clientBundle) send(msg comms.Message) {
	select {
	case c.downCh <- msg:
	default:
		// client lagging
		c.log.Info().Msg("client lagging, dropping message")
	}
}
