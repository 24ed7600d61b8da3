package debugfeed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Path is where the feed is served.
const Path = "/debug/ws"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewMux serves the hub at Path.
func NewMux(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// ServeHTTP upgrades the request and streams lines until either side goes
// away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("debug feed upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	lines, cancel := h.Subscribe()
	slog.Info("debug feed subscriber connected", "remote", r.RemoteAddr)

	go readPump(conn, cancel)
	go writePump(conn, lines)
}

// readPump only services control frames; anything the client sends is
// discarded. It cancels the subscription when the client goes away, which
// in turn stops writePump.
func readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		slog.Warn("failed to set read deadline", "error", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("debug feed read error", "error", err)
			}
			return
		}
	}
}

func writePump(conn *websocket.Conn, lines <-chan Line) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := conn.Close(); err != nil {
			slog.Debug("debug feed close failed", "error", err)
		}
		slog.Info("debug feed subscriber disconnected", "remote", conn.RemoteAddr().String())
	}()

	for {
		select {
		case line, ok := <-lines:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn("failed to set write deadline", "error", err)
			}
			if !ok {
				if err := conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					slog.Debug("debug feed close message failed", "error", err)
				}
				return
			}
			if err := conn.WriteJSON(line); err != nil {
				slog.Debug("debug feed write failed", "error", err)
				return
			}

		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn("failed to set ping write deadline", "error", err)
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("debug feed ping failed", "error", err)
				return
			}
		}
	}
}

// Serve runs an HTTP server for the feed on addr until ctx is done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("debug feed listening", "addr", addr, "path", Path)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
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
}
