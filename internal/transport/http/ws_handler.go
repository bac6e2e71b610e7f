package http

import (
	"log/slog"
	"net/http"

	"training-hub-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

// WSHandler streams leaderboard snapshots to connected clients whenever a
// student attempt is recorded.
type WSHandler struct {
	store    *memory.Store
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(store *memory.Store, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type leaderboardMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ServeWS upgrades the connection and pushes a snapshot immediately, then
// one per leaderboard change until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.store.SubscribeLeaderboard()
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			// Reads only serve to detect the client going away.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entries, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(leaderboardMessage{Type: "leaderboard", Payload: entries}); err != nil {
				h.logger.Debug("ws write failed", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}
