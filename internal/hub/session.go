package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Role distinguishes the two kinds of connected clients.
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleResponder Role = "responder"
)

// Envelope is the wire frame for every hub event, both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Session is one live connection. It owns the per-connection alert state so
// hotspot alert suppression needs no global bookkeeping.
type Session struct {
	ID        string
	Role      Role
	SubjectID string

	conn *websocket.Conn
	send chan Envelope
	done chan struct{}
	once sync.Once

	mu          sync.Mutex
	lastCluster string
	lastAlertAt time.Time
}

// ShouldAlert records an alert attempt for the given cluster and reports
// whether it should actually be delivered. Repeats for the same cluster are
// suppressed until the cooldown elapses; a different cluster always alerts.
func (s *Session) ShouldAlert(clusterKey string, cooldown time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastCluster == clusterKey && now.Sub(s.lastAlertAt) < cooldown {
		return false
	}
	s.lastCluster = clusterKey
	s.lastAlertAt = now
	return true
}

// enqueue hands an envelope to the write pump. A full buffer means the
// client is not draining; the frame is dropped rather than blocking the hub.
// The send channel is never closed, so an enqueue racing session teardown
// drops the frame instead of panicking.
func (s *Session) enqueue(env Envelope) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- env:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

func (s *Session) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// writePump serializes all writes for the connection and keeps it alive
// with pings. Exactly one writePump runs per session.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case env := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
