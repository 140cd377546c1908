package ws

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/dealtable/holdem/internal/orchestrator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades incoming HTTP requests to websocket connections bound
// to one game and one viewing seat, taken from the "game_id" and
// "seat_id" query parameters.
func Handler(manager *orchestrator.Manager, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("game_id")
		seatID, err := strconv.Atoi(r.URL.Query().Get("seat_id"))
		if gameID == "" || err != nil {
			http.Error(w, "game_id and seat_id query parameters are required", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}

		c := NewConnection(conn, logger, manager, gameID, seatID)
		c.Start()
	}
}
