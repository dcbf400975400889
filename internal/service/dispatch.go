package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/geo"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/hub"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/webhook"
)

//go:generate mockgen -source=dispatch.go -destination=mocks/dispatch_mock.go -package=mocks

// IncidentRepository is the contract for the SOS incident store. Every
// transition method is a conditional update: it succeeds only when the
// incident is still in the expected prior state, which makes duplicate event
// delivery and concurrent actors safe even across multiple instances.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	// AssignResponder moves pending -> accepted and sets the responder in one
	// atomic statement. false means the incident was not pending anymore.
	AssignResponder(ctx context.Context, id uuid.UUID, responderID string) (bool, error)
	// TransitionStatus moves the incident to the target status only when its
	// current status is one of from.
	TransitionStatus(ctx context.Context, id uuid.UUID, to models.IncidentStatus, from ...models.IncidentStatus) (bool, error)
	// ActiveByResponder lists incidents currently accepted by the responder.
	ActiveByResponder(ctx context.Context, responderID string) ([]*models.Incident, error)
	// ReleaseResponder moves accepted -> pending and clears the assignment.
	ReleaseResponder(ctx context.Context, id uuid.UUID) (bool, error)
}

// ResponderDirectory reads responder positions from the user directory.
type ResponderDirectory interface {
	ListResponders(ctx context.Context) ([]models.ResponderLocation, error)
}

// SessionNotifier is the hub surface the coordinator needs: targeted sends
// and responder-only broadcast. Implemented by *hub.Hub.
type SessionNotifier interface {
	Send(role hub.Role, subjectID, event string, payload any) bool
	BroadcastResponders(event string, payload any, except ...string)
}

// Session protocol event names (server -> client).
const (
	EventNewIncident       = "new-incident"
	EventIncidentAccepted  = "incident-accepted"
	EventIncidentTaken     = "incident-taken"
	EventResponderLocation = "responder-location"
	EventIncidentCancelled = "incident-cancelled"
	EventIncidentCompleted = "incident-completed"
	EventHotspotAlert      = "hotspot-alert"
)

// NewIncidentEvent is broadcast to responders when an SOS is created or
// returns to the pool after a responder disconnect.
type NewIncidentEvent struct {
	IncidentID           uuid.UUID `json:"incident_id"`
	CitizenID            string    `json:"citizen_id"`
	Location             geo.Point `json:"location"`
	SuggestedResponderID string    `json:"suggested_responder_id,omitempty"`
}

// IncidentAcceptedEvent goes to the originating citizen only.
type IncidentAcceptedEvent struct {
	IncidentID        uuid.UUID `json:"incident_id"`
	ResponderID       string    `json:"responder_id"`
	ResponderLocation geo.Point `json:"responder_location"`
}

// IncidentTakenEvent tells the losing responders to retract the offer.
type IncidentTakenEvent struct {
	IncidentID uuid.UUID `json:"incident_id"`
}

// ResponderLocationEvent relays the assigned responder's position to the
// citizen while the incident is accepted.
type ResponderLocationEvent struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Location   geo.Point `json:"location"`
}

// IncidentClosedEvent notifies a cancellation or completion.
type IncidentClosedEvent struct {
	IncidentID uuid.UUID `json:"incident_id"`
}

// DispatchService owns the SOS incident lifecycle state machine:
// pending -> accepted -> completed, or pending/accepted -> cancelled.
type DispatchService interface {
	CreateIncident(ctx context.Context, citizenID string, loc geo.Point) (*models.Incident, error)
	AcceptIncident(ctx context.Context, incidentID uuid.UUID, responderID string, loc geo.Point) (*models.Incident, error)
	RelayResponderLocation(ctx context.Context, incidentID uuid.UUID, loc geo.Point) error
	CancelIncident(ctx context.Context, incidentID uuid.UUID, citizenID string) error
	CompleteIncident(ctx context.Context, incidentID uuid.UUID, actorID string) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	HandleResponderDisconnect(responderID string)
}

type dispatchService struct {
	repo      IncidentRepository
	directory ResponderDirectory
	notifier  SessionNotifier
	events    webhook.EventPublisher
	logger    *logrus.Logger
	cfg       *config.Config
}

// NewDispatchService builds the coordinator.
func NewDispatchService(
	repo IncidentRepository,
	directory ResponderDirectory,
	notifier SessionNotifier,
	events webhook.EventPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) DispatchService {
	return &dispatchService{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		events:    events,
		logger:    logger,
		cfg:       cfg,
	}
}

// CreateIncident persists a pending incident, locates the nearest responder
// and broadcasts the new-incident event to responder sessions only. The
// originating citizen does not receive their own broadcast.
func (s *dispatchService) CreateIncident(ctx context.Context, citizenID string, loc geo.Point) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dispatch",
		"method":     "CreateIncident",
		"citizen_id": citizenID,
	})

	if loc.IsZero() {
		log.Warn("Rejected incident without usable coordinates")
		return nil, ErrMissingLocation
	}

	incident := &models.Incident{
		CitizenID: citizenID,
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		Status:    models.IncidentPending,
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)

	// The locator runs once, at creation time. A directory failure only
	// costs the suggestion hint, not the dispatch itself.
	suggested := ""
	if responders, err := s.directory.ListResponders(ctx); err != nil {
		log.WithError(err).Warn("Failed to read responder directory")
	} else if nearest := NearestResponder(loc, responders); nearest != nil {
		suggested = nearest.ResponderID
	}

	s.notifier.BroadcastResponders(EventNewIncident, NewIncidentEvent{
		IncidentID:           incident.ID,
		CitizenID:            incident.CitizenID,
		Location:             loc,
		SuggestedResponderID: suggested,
	})

	s.publishEvent(ctx, webhook.Event{
		Type:      webhook.EventTypeSOSCreated,
		SubjectID: citizenID,
		Payload:   incident,
		Timestamp: time.Now(),
	})

	log.WithField("suggested_responder", suggested).Info("Incident created and broadcast to responders")
	return incident, nil
}

// AcceptIncident applies the at-most-one-acceptance rule: the store-level
// compare-and-swap decides the winner, everyone else gets ErrAlreadyTaken.
func (s *dispatchService) AcceptIncident(ctx context.Context, incidentID uuid.UUID, responderID string, loc geo.Point) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "AcceptIncident",
		"incident_id":  incidentID,
		"responder_id": responderID,
	})

	// Read before the swap: once the assignment lands, the participants get
	// notified from data already in hand, so a store hiccup after the CAS
	// cannot strand an accepted incident with nobody informed. CitizenID and
	// the location never change after creation, so the pre-read stays valid.
	incident, err := s.repo.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Acceptance for unknown incident")
		return nil, ErrIncidentNotFound
	}

	ok, err := s.repo.AssignResponder(ctx, incidentID, responderID)
	if err != nil {
		log.WithError(err).Error("Failed to assign responder")
		return nil, fmt.Errorf("service: could not accept incident: %w", err)
	}
	if !ok {
		log.Info("Acceptance rejected, incident already taken")
		return nil, ErrAlreadyTaken
	}

	incident.Status = models.IncidentAccepted
	incident.AssignedResponderID = responderID

	s.notifier.Send(hub.RoleCitizen, incident.CitizenID, EventIncidentAccepted, IncidentAcceptedEvent{
		IncidentID:        incidentID,
		ResponderID:       responderID,
		ResponderLocation: loc,
	})
	s.notifier.BroadcastResponders(EventIncidentTaken, IncidentTakenEvent{IncidentID: incidentID}, responderID)

	s.publishEvent(ctx, webhook.Event{
		Type:      webhook.EventTypeSOSAccepted,
		SubjectID: incident.CitizenID,
		Payload:   incident,
		Timestamp: time.Now(),
	})

	log.Info("Incident accepted")
	return incident, nil
}

// RelayResponderLocation forwards the responder position to the citizen. A
// relay for an incident that is not accepted is a logged no-op, not an error.
func (s *dispatchService) RelayResponderLocation(ctx context.Context, incidentID uuid.UUID, loc geo.Point) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "RelayResponderLocation",
		"incident_id": incidentID,
	})

	incident, err := s.repo.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Relay for unknown incident")
		return ErrIncidentNotFound
	}
	if incident.Status != models.IncidentAccepted {
		log.WithField("status", incident.Status).Info("Dropping relay for non-accepted incident")
		return nil
	}

	s.notifier.Send(hub.RoleCitizen, incident.CitizenID, EventResponderLocation, ResponderLocationEvent{
		IncidentID: incidentID,
		Location:   loc,
	})
	return nil
}

// CancelIncident is citizen-only and valid from pending or accepted.
func (s *dispatchService) CancelIncident(ctx context.Context, incidentID uuid.UUID, citizenID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CancelIncident",
		"incident_id": incidentID,
		"citizen_id":  citizenID,
	})

	incident, err := s.repo.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Cancellation for unknown incident")
		return ErrIncidentNotFound
	}
	if incident.CitizenID != citizenID {
		log.Warn("Cancellation attempt by non-owner")
		return ErrNotParticipant
	}

	ok, err := s.repo.TransitionStatus(ctx, incidentID, models.IncidentCancelled,
		models.IncidentPending, models.IncidentAccepted)
	if err != nil {
		log.WithError(err).Error("Failed to cancel incident")
		return fmt.Errorf("service: could not cancel incident: %w", err)
	}
	if !ok {
		log.WithField("status", incident.Status).Info("Cancellation rejected, incident already terminal")
		return ErrInvalidTransition
	}

	if incident.AssignedResponderID != "" {
		s.notifier.Send(hub.RoleResponder, incident.AssignedResponderID, EventIncidentCancelled,
			IncidentClosedEvent{IncidentID: incidentID})
	}
	// Responders still showing the open offer retract it too.
	s.notifier.BroadcastResponders(EventIncidentCancelled, IncidentClosedEvent{IncidentID: incidentID},
		incident.AssignedResponderID)

	log.Info("Incident cancelled")
	return nil
}

// CompleteIncident closes an accepted incident. Both the assigned responder
// and the citizen may trigger it; nobody else can.
func (s *dispatchService) CompleteIncident(ctx context.Context, incidentID uuid.UUID, actorID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CompleteIncident",
		"incident_id": incidentID,
		"actor_id":    actorID,
	})

	incident, err := s.repo.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Completion for unknown incident")
		return ErrIncidentNotFound
	}
	if actorID != incident.AssignedResponderID && actorID != incident.CitizenID {
		log.Warn("Completion attempt by non-participant")
		return ErrNotParticipant
	}

	ok, err := s.repo.TransitionStatus(ctx, incidentID, models.IncidentCompleted, models.IncidentAccepted)
	if err != nil {
		log.WithError(err).Error("Failed to complete incident")
		return fmt.Errorf("service: could not complete incident: %w", err)
	}
	if !ok {
		log.WithField("status", incident.Status).Info("Completion rejected, incident not accepted")
		return ErrInvalidTransition
	}

	s.notifier.Send(hub.RoleCitizen, incident.CitizenID, EventIncidentCompleted,
		IncidentClosedEvent{IncidentID: incidentID})

	log.Info("Incident completed")
	return nil
}

// GetIncident fetches one incident by id.
func (s *dispatchService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrIncidentNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// HandleResponderDisconnect compensates for a responder dropping while
// holding an acceptance: the incident reverts to pending and returns to the
// responder pool. Incidents created by a disconnecting citizen are left
// untouched; they outlive the connection.
func (s *dispatchService) HandleResponderDisconnect(responderID string) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "HandleResponderDisconnect",
		"responder_id": responderID,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	incidents, err := s.repo.ActiveByResponder(ctx, responderID)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents held by disconnected responder")
		return
	}

	for _, incident := range incidents {
		ok, err := s.repo.ReleaseResponder(ctx, incident.ID)
		if err != nil {
			log.WithError(err).WithField("incident_id", incident.ID).Error("Failed to release incident")
			continue
		}
		if !ok {
			continue
		}

		s.notifier.BroadcastResponders(EventNewIncident, NewIncidentEvent{
			IncidentID: incident.ID,
			CitizenID:  incident.CitizenID,
			Location:   geo.Point{Lat: incident.Latitude, Lng: incident.Longitude},
		})
		log.WithField("incident_id", incident.ID).Info("Incident returned to the responder pool")
	}
}

// publishEvent queues a webhook event; a queue failure is logged and never
// surfaced to the actor.
func (s *dispatchService) publishEvent(ctx context.Context, event webhook.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.Type).Warn("Failed to queue webhook event")
	}
}
