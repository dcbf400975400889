package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/geo"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/hub"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
)

// Client -> server event names. Server -> client names live in the service
// package next to their payload types.
const (
	wsEventCreateIncident    = "create-incident"
	wsEventAcceptIncident    = "accept-incident"
	wsEventResponderLocation = "responder-location"
	wsEventCancelIncident    = "cancel-incident"
	wsEventCompleteIncident  = "complete-incident"
	wsEventLocationUpdate    = "location-update"
	wsEventError             = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session auth happens at the API gateway; the dispatch core accepts any
	// origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsLocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type wsIncidentPayload struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
}

type wsErrorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// @Summary Open a realtime dispatch session
// @Description Upgrade to a websocket session. Events are JSON envelopes {"event": ..., "data": ...}.
// @Tags Realtime
// @Param role query string true "Session role" Enums(citizen, responder)
// @Param subject_id query string true "Citizen or responder identifier"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} map[string]string "Missing or invalid role/subject"
// @Router /ws [get]
func (h *Handler) serveWS(c *gin.Context) {
	log := h.logger.WithField("method", "serveWS")

	role := hub.Role(c.Query("role"))
	subjectID := c.Query("subject_id")
	if (role != hub.RoleCitizen && role != hub.RoleResponder) || subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and subject_id are required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	sess := h.sessions.Register(conn, role, subjectID)
	h.sessions.ReadLoop(sess, func(env hub.Envelope) {
		h.routeEnvelope(sess, env)
	})
}

// routeEnvelope dispatches one inbound session event. Role violations and
// service failures are reported back on the same connection as error events;
// they never tear the session down.
func (h *Handler) routeEnvelope(sess *hub.Session, env hub.Envelope) {
	ctx := context.Background()

	switch env.Event {
	case wsEventCreateIncident:
		if !h.requireRole(sess, env.Event, hub.RoleCitizen) {
			return
		}
		var p wsLocationPayload
		if !h.decode(sess, env, &p) {
			return
		}
		if _, err := h.dispatchService.CreateIncident(ctx, sess.SubjectID,
			geo.Point{Lat: p.Latitude, Lng: p.Longitude}); err != nil {
			h.sendError(sess, env.Event, err)
		}

	case wsEventAcceptIncident:
		if !h.requireRole(sess, env.Event, hub.RoleResponder) {
			return
		}
		var p wsIncidentPayload
		if !h.decode(sess, env, &p) {
			return
		}
		if _, err := h.dispatchService.AcceptIncident(ctx, p.IncidentID, sess.SubjectID,
			geo.Point{Lat: p.Latitude, Lng: p.Longitude}); err != nil {
			h.sendError(sess, env.Event, err)
		}

	case wsEventResponderLocation:
		if !h.requireRole(sess, env.Event, hub.RoleResponder) {
			return
		}
		var p wsIncidentPayload
		if !h.decode(sess, env, &p) {
			return
		}
		if err := h.dispatchService.RelayResponderLocation(ctx, p.IncidentID,
			geo.Point{Lat: p.Latitude, Lng: p.Longitude}); err != nil {
			h.sendError(sess, env.Event, err)
		}

	case wsEventCancelIncident:
		if !h.requireRole(sess, env.Event, hub.RoleCitizen) {
			return
		}
		var p wsIncidentPayload
		if !h.decode(sess, env, &p) {
			return
		}
		if err := h.dispatchService.CancelIncident(ctx, p.IncidentID, sess.SubjectID); err != nil {
			h.sendError(sess, env.Event, err)
		}

	case wsEventCompleteIncident:
		var p wsIncidentPayload
		if !h.decode(sess, env, &p) {
			return
		}
		if err := h.dispatchService.CompleteIncident(ctx, p.IncidentID, sess.SubjectID); err != nil {
			h.sendError(sess, env.Event, err)
		}

	case wsEventLocationUpdate:
		if !h.requireRole(sess, env.Event, hub.RoleCitizen) {
			return
		}
		var p wsLocationPayload
		if !h.decode(sess, env, &p) {
			return
		}
		h.geofenceService.EvaluateSession(ctx, sess, geo.Point{Lat: p.Latitude, Lng: p.Longitude})

	default:
		h.logger.WithField("event", env.Event).Debug("Ignoring unknown session event")
	}
}

func (h *Handler) requireRole(sess *hub.Session, event string, role hub.Role) bool {
	if sess.Role == role {
		return true
	}
	h.sessions.SendTo(sess, wsEventError, wsErrorPayload{
		Event:   event,
		Message: "event not allowed for this role",
	})
	return false
}

func (h *Handler) decode(sess *hub.Session, env hub.Envelope, dst any) bool {
	if err := json.Unmarshal(env.Data, dst); err != nil {
		h.sessions.SendTo(sess, wsEventError, wsErrorPayload{
			Event:   env.Event,
			Message: "malformed event payload",
		})
		return false
	}
	return true
}

func (h *Handler) sendError(sess *hub.Session, event string, err error) {
	msg := "internal error"
	if service.IsDomainError(err) {
		msg = err.Error()
	}
	h.sessions.SendTo(sess, wsEventError, wsErrorPayload{Event: event, Message: msg})
}
