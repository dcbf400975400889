// Package hub is the realtime session substrate: it accepts websocket
// connections, addresses them by role and subject id, and relays typed
// events. It never interprets event payloads.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// DisconnectHook is invoked after a session is removed from the registry.
type DisconnectHook func(role Role, subjectID string)

// Hub keeps the registry of live sessions. Delivery is targeted: events go
// to one subject or to the responder set, never to every connection.
type Hub struct {
	logger *logrus.Logger

	mu       sync.RWMutex
	sessions map[string]*Session        // connection id -> session
	bySubj   map[Role]map[string]string // role -> subject id -> connection id

	onDisconnect DisconnectHook
}

// New creates an empty hub.
func New(logger *logrus.Logger) *Hub {
	return &Hub{
		logger:   logger,
		sessions: make(map[string]*Session),
		bySubj: map[Role]map[string]string{
			RoleCitizen:   make(map[string]string),
			RoleResponder: make(map[string]string),
		},
	}
}

// SetDisconnectHook registers the callback fired when a session goes away.
func (h *Hub) SetDisconnectHook(hook DisconnectHook) {
	h.onDisconnect = hook
}

// Register adopts an upgraded connection, assigns it a connection id and
// starts its write pump. A second connection for the same subject replaces
// the first in the addressing table; the stale session keeps draining until
// its client disconnects.
func (h *Hub) Register(conn *websocket.Conn, role Role, subjectID string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Role:      role,
		SubjectID: subjectID,
		conn:      conn,
		send:      make(chan Envelope, sendBuffer),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.bySubj[role][subjectID] = s.ID
	h.mu.Unlock()

	go s.writePump()

	h.logger.WithFields(logrus.Fields{
		"connection_id": s.ID,
		"role":          role,
		"subject_id":    subjectID,
	}).Info("Session registered")
	return s
}

// Unregister removes the session and fires the disconnect hook. Safe to call
// for an already-removed session. The hook fires only when the subject loses
// its last live session: a stale connection replaced by a reconnect is torn
// down without signalling a disconnect.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	_, known := h.sessions[s.ID]
	delete(h.sessions, s.ID)
	subjectGone := h.bySubj[s.Role][s.SubjectID] == s.ID
	if subjectGone {
		delete(h.bySubj[s.Role], s.SubjectID)
	}
	h.mu.Unlock()

	s.close()
	if !known {
		return
	}

	h.logger.WithFields(logrus.Fields{
		"connection_id": s.ID,
		"role":          s.Role,
		"subject_id":    s.SubjectID,
		"subject_gone":  subjectGone,
	}).Info("Session unregistered")

	if h.onDisconnect != nil && subjectGone {
		h.onDisconnect(s.Role, s.SubjectID)
	}
}

// ReadLoop pumps inbound envelopes to handle until the connection drops,
// then unregisters the session.
func (h *Hub) ReadLoop(s *Session, handle func(Envelope)) {
	defer h.Unregister(s)

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := s.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).WithField("connection_id", s.ID).Debug("Read loop ended")
			}
			return
		}
		handle(env)
	}
}

// Send delivers one event to the subject's live session. A missing or gone
// connection is not an error to the caller: the subject is treated as
// already disconnected and false is returned.
func (h *Hub) Send(role Role, subjectID, event string, payload any) bool {
	env, err := wrap(event, payload)
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to encode event payload")
		return false
	}

	h.mu.RLock()
	connID, ok := h.bySubj[role][subjectID]
	s := h.sessions[connID]
	h.mu.RUnlock()

	if !ok || s == nil {
		h.logger.WithFields(logrus.Fields{"role": role, "subject_id": subjectID, "event": event}).
			Debug("No live session for subject")
		return false
	}
	return s.enqueue(env)
}

// SendTo delivers one event directly to a session.
func (h *Hub) SendTo(s *Session, event string, payload any) bool {
	env, err := wrap(event, payload)
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to encode event payload")
		return false
	}
	return s.enqueue(env)
}

// BroadcastResponders delivers one event to every connected responder except
// the listed subject ids.
func (h *Hub) BroadcastResponders(event string, payload any, except ...string) {
	env, err := wrap(event, payload)
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to encode event payload")
		return
	}

	skip := make(map[string]struct{}, len(except))
	for _, id := range except {
		skip[id] = struct{}{}
	}

	h.mu.RLock()
	targets := make([]*Session, 0, len(h.bySubj[RoleResponder]))
	for subjectID, connID := range h.bySubj[RoleResponder] {
		if _, excluded := skip[subjectID]; excluded {
			continue
		}
		if s := h.sessions[connID]; s != nil {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		s.enqueue(env)
	}
}

// ResponderCount returns the number of live responder sessions.
func (h *Hub) ResponderCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.bySubj[RoleResponder])
}

func wrap(event string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: data}, nil
}
