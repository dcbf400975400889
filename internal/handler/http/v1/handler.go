package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/geo"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/hub"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
)

type Handler struct {
	dispatchService service.DispatchService
	hotspotService  service.HotspotService
	geofenceService service.GeofenceService
	sessions        *hub.Hub
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	dispatchService service.DispatchService,
	hotspotService service.HotspotService,
	geofenceService service.GeofenceService,
	sessions *hub.Hub,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		dispatchService: dispatchService,
		hotspotService:  hotspotService,
		geofenceService: geofenceService,
		sessions:        sessions,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// respondServiceError translates domain sentinels into HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIncidentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, service.ErrAlreadyTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "incident already taken"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "incident is not in a valid state for this action"})
	case errors.Is(err, service.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant of this incident"})
	case errors.Is(err, service.ErrMissingLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "usable coordinates are required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Raise an SOS incident
// @Description Create a pending SOS incident and broadcast it to connected responders. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sos body CreateSOSRequest true "SOS creation request"
// @Success 201 {object} SOSResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos [post]
func (h *Handler) createSOS(c *gin.Context) {
	var input CreateSOSRequest
	log := h.logger.WithField("method", "createSOS")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.dispatchService.CreateIncident(c.Request.Context(), input.CitizenID,
		geo.Point{Lat: input.Latitude, Lng: input.Longitude})
	if err != nil {
		log.WithError(err).Error("Failed to create incident in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToSOSResponse(incident))
}

// @Summary Get SOS incident by ID
// @Description Get the current state of one SOS incident. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} SOSResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /sos/{id} [get]
func (h *Handler) getSOS(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getSOS").WithField("id", id)

	incident, err := h.dispatchService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSOSResponse(incident))
}

// @Summary Cancel an SOS incident
// @Description Cancel a pending or accepted incident. Only the originating citizen may cancel. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param body body CancelSOSRequest true "Cancellation request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the incident owner"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident already terminal"
// @Router /sos/{id}/cancel [post]
func (h *Handler) cancelSOS(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "cancelSOS").WithField("id", id)

	var input CancelSOSRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatchService.CancelIncident(c.Request.Context(), id, input.CitizenID); err != nil {
		log.WithError(err).Warn("Failed to cancel incident in service")
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Complete an SOS incident
// @Description Close an accepted incident. The citizen or the assigned responder may complete. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param body body CompleteSOSRequest true "Completion request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident not accepted"
// @Router /sos/{id}/complete [post]
func (h *Handler) completeSOS(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "completeSOS").WithField("id", id)

	var input CompleteSOSRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatchService.CompleteIncident(c.Request.Context(), id, input.ActorID); err != nil {
		log.WithError(err).Warn("Failed to complete incident in service")
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Get current hotspots
// @Description Get the current set of crime hotspot clusters. Requires API key.
// @Tags Hotspots
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} HotspotsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hotspots [get]
func (h *Handler) getHotspots(c *gin.Context) {
	log := h.logger.WithField("method", "getHotspots")

	clusters, err := h.hotspotService.GetHotspots(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get hotspots from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ClustersToResponse(clusters))
}

// @Summary Force a hotspot recomputation
// @Description Run the clustering model synchronously, bypassing the snapshot TTL. Requires API key.
// @Tags Hotspots
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} HotspotsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Model run failed"
// @Router /hotspots/refresh [post]
func (h *Handler) refreshHotspots(c *gin.Context) {
	log := h.logger.WithField("method", "refreshHotspots")

	clusters, err := h.hotspotService.Refresh(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Forced hotspot refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "hotspot model run failed"})
		return
	}
	c.JSON(http.StatusOK, ClustersToResponse(clusters))
}

// @Summary Check location against hotspots
// @Description Check whether a location falls inside any hotspot cluster. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body LocationCheckRequest true "Location check request"
// @Success 200 {object} HotspotsResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/check [post]
func (h *Handler) checkLocation(c *gin.Context) {
	var input LocationCheckRequest
	log := h.logger.WithField("method", "checkLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := h.geofenceService.CheckLocation(c.Request.Context(), input.UserID,
		geo.Point{Lat: input.Latitude, Lng: input.Longitude})
	if err != nil {
		log.WithError(err).Error("Failed to check location in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClustersToResponse(matches))
}

// @Summary Get user statistics
// @Description Get the count of distinct users that checked a location within the stats window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	userCount, err := h.geofenceService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{UserCount: userCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"responders": h.sessions.ResponderCount(),
	})
}
