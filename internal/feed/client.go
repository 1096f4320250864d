// Package feed reads gosumemory updates from its websocket endpoint.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"nhooyr.io/websocket"
)

const (
	DefaultURL            = "ws://localhost:24050/ws"
	DefaultReconnectDelay = 2 * time.Second
	DefaultReadLimit      = 1 << 20
)

// Handler receives every successfully parsed state. States are shared
// between handlers and must not be modified.
type Handler func(state *message.GosuMemoryState)

type Options struct {
	ReconnectDelay time.Duration
	// ReadLimit caps one websocket message. gosumemory documents with strain
	// graphs exceed the websocket package's 32 KiB default.
	ReadLimit int64
	Logger    *slog.Logger
}

type Client struct {
	url  string
	opts Options

	latest     *message.GosuMemoryState
	latestLock sync.Mutex

	handlers     []Handler
	handlersLock sync.Mutex
}

func NewClient(url string, opts Options) *Client {
	if url == "" {
		url = DefaultURL
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = DefaultReadLimit
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		url:  url,
		opts: opts,
	}
}

// OnState registers h. Handlers run on the receive goroutine in
// registration order.
func (c *Client) OnState(h Handler) {
	c.handlersLock.Lock()
	c.handlers = append(c.handlers, h)
	c.handlersLock.Unlock()
}

// Run keeps a connection to the feed open until ctx is done, dialing again
// after ReconnectDelay whenever the connection fails. It returns ctx.Err().
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.opts.Logger.Warn("feed disconnected",
			slog.String("url", c.url),
			slog.Duration("retry_in", c.opts.ReconnectDelay),
			slog.Any("err", err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.ReconnectDelay):
		}
	}
}

func (c *Client) session(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to feed: %w", err)
	}
	defer conn.Close(websocket.StatusInternalError, "")

	conn.SetReadLimit(c.opts.ReadLimit)
	c.opts.Logger.Info("feed connected", slog.String("url", c.url))

	err = c.recvHandler(ctx, conn)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		conn.Close(websocket.StatusNormalClosure, "")
	}
	return err
}

func (c *Client) recvHandler(ctx context.Context, conn *websocket.Conn) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read feed: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}

		state, err := message.Parse(data)
		if err != nil {
			c.opts.Logger.Warn("skipping feed update", slog.Any("err", err))
			continue
		}

		c.latestLock.Lock()
		c.latest = state
		c.latestLock.Unlock()

		c.handlersLock.Lock()
		handlers := make([]Handler, len(c.handlers))
		copy(handlers, c.handlers)
		c.handlersLock.Unlock()

		for _, h := range handlers {
			h(state)
		}
	}
}

// Latest returns the last successfully parsed state.
func (c *Client) Latest() (*message.GosuMemoryState, bool) {
	c.latestLock.Lock()
	defer c.latestLock.Unlock()

	return c.latest, c.latest != nil
}

// Once dials url, parses the first text message and closes the connection.
func Once(ctx context.Context, url string, readLimit int64) (*message.GosuMemoryState, error) {
	if readLimit <= 0 {
		readLimit = DefaultReadLimit
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to feed: %w", err)
	}
	defer conn.Close(websocket.StatusInternalError, "")
	conn.SetReadLimit(readLimit)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read feed: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}

		state, err := message.Parse(data)
		if err != nil {
			return nil, err
		}

		conn.Close(websocket.StatusNormalClosure, "")
		return state, nil
	}
}
