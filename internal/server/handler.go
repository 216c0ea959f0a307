package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/logging"
)

const writeWait = 5 * time.Second

// Handler returns the HTTP handler serving /sources and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sources", s.handleSources)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, _ := s.current()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		logging.Debug("Failed to write snapshot", zap.Error(err))
	}
}

// handleWebSocket sends the current snapshot on connect and every new
// revision after it. Client messages are ignored.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	defer func() { _ = conn.Close() }()

	s.addClient(1)
	defer s.addClient(-1)
	logging.Info("Feed client connected", zap.String("remote_addr", r.RemoteAddr))

	// The read loop processes control frames and notices disconnects.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	var sent uint64
	first := true
	for {
		snapshot, changed := s.current()
		if first || snapshot.Revision != sent {
			if err := s.send(conn, snapshot); err != nil {
				logging.Debug("Feed client write failed",
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				return
			}
			sent = snapshot.Revision
			first = false
		}

		select {
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-gone:
			logging.Info("Feed client disconnected", zap.String("remote_addr", r.RemoteAddr))
			return
		case <-changed:
		}
	}
}

func (s *Server) send(conn *websocket.Conn, snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
