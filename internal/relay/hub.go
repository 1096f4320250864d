// Package relay re-serves parsed gosumemory states to overlay clients.
package relay

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/grafov/bcast"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const writeTimeout = 5 * time.Second

// envelope numbers published states. bcast delivers each payload on its own
// goroutine, so subscribers use seq to drop states that arrive late.
type envelope struct {
	seq   uint64
	state *message.GosuMemoryState
}

type Hub struct {
	group  *bcast.Group
	logger *slog.Logger

	seq    uint64
	latest *envelope
	lock   sync.Mutex

	subscribers atomic.Int64
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	group := bcast.NewGroup()
	go group.Broadcast(0)

	return &Hub{
		group:  group,
		logger: logger,
	}
}

// Publish makes state the latest and fans it out to every subscriber.
func (h *Hub) Publish(state *message.GosuMemoryState) {
	h.lock.Lock()
	h.seq++
	env := &envelope{seq: h.seq, state: state}
	h.latest = env
	h.lock.Unlock()

	h.group.Send(env)
}

func (h *Hub) Latest() (*message.GosuMemoryState, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.latest == nil {
		return nil, false
	}
	return h.latest.state, true
}

func (h *Hub) Subscribers() int {
	return int(h.subscribers.Load())
}

// HandleConnection streams states to conn until the peer disconnects, a
// write times out or ctx is done. Peers are receive-only: CloseRead drops
// the connection if they send anything.
func (h *Hub) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	member := h.group.Join()
	// Leave waits for any in-flight delivery, so keep reading until it
	// closes Read.
	defer func() {
		go func() {
			for range member.Read {
			}
		}()
		member.Close()
	}()

	ctx = conn.CloseRead(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	id := uuid.New().String()
	h.subscribers.Add(1)
	defer h.subscribers.Add(-1)
	h.logger.Info("relay client joined", slog.String("id", id))
	defer h.logger.Info("relay client left", slog.String("id", id))

	var sent uint64
	write := func(env *envelope) bool {
		if env.seq <= sent {
			return true
		}
		wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
		defer wcancel()

		if err := wsjson.Write(wctx, conn, env.state); err != nil {
			h.logger.Debug("relay write failed", slog.String("id", id), slog.Any("err", err))
			return false
		}
		sent = env.seq
		return true
	}

	h.lock.Lock()
	latest := h.latest
	h.lock.Unlock()
	if latest != nil && !write(latest) {
		return
	}

	for {
		select {
		case m, ok := <-member.Read:
			if !ok {
				return
			}

			env, ok := m.(*envelope)
			if !ok {
				continue
			}
			if !write(env) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
