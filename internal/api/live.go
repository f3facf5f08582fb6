// internal/api/live.go
package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/andrecollier/website-builder-sub004/internal/common/metrics"
	"github.com/andrecollier/website-builder-sub004/internal/harmony"
	"github.com/andrecollier/website-builder-sub004/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The mixer UI is served from arbitrary preview origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveCheckRequest is one client frame on the live harmony socket. Either
// inline references or a session id must be supplied; with a session id
// the stored references are resolved through the mapping.
type liveCheckRequest struct {
	SessionID      string                `json:"sessionId,omitempty"`
	References     []*models.Reference   `json:"references,omitempty"`
	SectionMapping models.SectionMapping `json:"sectionMapping,omitempty"`
	Options        *harmony.CheckOptions `json:"options,omitempty"`
}

type liveFrame struct {
	Type      string                `json:"type"`
	SessionID string                `json:"sessionId,omitempty"`
	Result    *models.HarmonyResult `json:"result,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// lockedConn serializes writes to one WebSocket connection.
type lockedConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (lc *lockedConn) writeJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// LiveHub owns the set of live harmony connections.
type LiveHub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*lockedConn
}

func NewLiveHub() *LiveHub {
	return &LiveHub{conns: make(map[*websocket.Conn]*lockedConn)}
}

func (h *LiveHub) add(conn *websocket.Conn) *lockedConn {
	h.mu.Lock()
	defer h.mu.Unlock()
	lc := &lockedConn{conn: conn}
	h.conns[conn] = lc
	return lc
}

func (h *LiveHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast pushes a frame to every connected client, dropping
// connections whose writes fail.
func (h *LiveHub) Broadcast(frame liveFrame) {
	h.mu.RLock()
	conns := make([]*lockedConn, 0, len(h.conns))
	for _, lc := range h.conns {
		conns = append(conns, lc)
	}
	h.mu.RUnlock()

	for _, lc := range conns {
		if err := lc.writeJSON(frame); err != nil {
			h.remove(lc.conn)
			_ = lc.conn.Close()
		}
	}
}

// handleHarmonyLive answers each client frame with a harmony result frame,
// giving the UI live feedback while sections are being assigned.
func (s *Server) handleHarmonyLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	lc := s.live.add(conn)
	defer func() {
		s.live.remove(conn)
		_ = conn.Close()
	}()

	for {
		var req liveCheckRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		refs := req.References
		if req.SessionID != "" {
			stored, err := s.store.ListReferences(r.Context(), req.SessionID)
			if err != nil {
				_ = lc.writeJSON(liveFrame{Type: "error", SessionID: req.SessionID, Error: err.Error()})
				continue
			}
			refs = stored
			if len(req.SectionMapping) > 0 {
				refs = harmony.UsedReferences(req.SectionMapping, stored)
			}
		}

		if !harmony.CanCalculate(refs) {
			_ = lc.writeJSON(liveFrame{
				Type:      "error",
				SessionID: req.SessionID,
				Error:     "harmony needs at least two ready references with color tokens",
			})
			continue
		}

		result := s.checker.Calculate(refs, req.SectionMapping, req.Options)
		metrics.HarmonyChecksTotal.WithLabelValues("websocket").Inc()
		metrics.HarmonyScore.Observe(float64(result.Score))

		if err := lc.writeJSON(liveFrame{Type: "harmony", SessionID: req.SessionID, Result: result}); err != nil {
			return
		}
	}
}
