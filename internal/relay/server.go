package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"nhooyr.io/websocket"
)

func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	// Overlays are local browser sources served from any origin, matching
	// the CORS headers below.
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer c.Close(websocket.StatusInternalError, "the sky is falling")

	h.HandleConnection(r.Context(), c)

	c.Close(websocket.StatusNormalClosure, "")
}

func (h *Hub) StateHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := h.Latest()
	if !ok {
		http.Error(w, "no state received yet", http.StatusServiceUnavailable)
		return
	}

	b, err := message.Marshal(state)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (h *Hub) MapHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := h.Latest()
	if !ok {
		http.Error(w, "no state received yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(message.NewOsuMap(state))
}

// Handler serves /ws, /json and /map with permissive CORS headers.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.WebSocketHandler)
	mux.HandleFunc("/json", h.StateHandler)
	mux.HandleFunc("/map", h.MapHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves h on addr until ctx is done. Open websocket
// connections are closed with ctx, since Shutdown does not track them.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		h.logger.Info("relay listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
