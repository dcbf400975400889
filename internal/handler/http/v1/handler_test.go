package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/geo"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/hub"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	dispatch *mocks.MockDispatchService
	hotspots *mocks.MockHotspotService
	geofence *mocks.MockGeofenceService
}

func newTestHandler(t *testing.T) (handlerMocks, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		dispatch: mocks.NewMockDispatchService(ctrl),
		hotspots: mocks.NewMockHotspotService(ctrl),
		geofence: mocks.NewMockGeofenceService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(m.dispatch, m.hotspots, m.geofence, hub.New(logger), logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	handler.RegisterPublicRoutes(api)

	return m, router
}

func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSOS_Success(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CreateSOSRequest{
		CitizenID: "citizen-1",
		Latitude:  21.1702,
		Longitude: 72.8311,
	}

	m.dispatch.EXPECT().
		CreateIncident(gomock.Any(), "citizen-1", geo.Point{Lat: 21.1702, Lng: 72.8311}).
		Return(&models.Incident{
			ID:        incidentID,
			CitizenID: "citizen-1",
			Latitude:  21.1702,
			Longitude: 72.8311,
			Status:    models.IncidentPending,
		}, nil)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/sos", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp SOSResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, string(models.IncidentPending), resp.Status)
}

func TestCreateSOS_InvalidJSON(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/sos", bytes.NewBufferString(`{"citizen_id": "x"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateSOS_ValidationError(t *testing.T) {
	_, router := newTestHandler(t)
	reqBody := CreateSOSRequest{
		Latitude:  21.1702,
		Longitude: 72.8311,
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/sos", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'CitizenID' failed on the 'required' tag")
}

func TestCreateSOS_ServiceError(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateSOSRequest{
		CitizenID: "citizen-1",
		Latitude:  21.1702,
		Longitude: 72.8311,
	}

	m.dispatch.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database down"))

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/sos", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetSOS_Success(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()

	m.dispatch.EXPECT().GetIncident(gomock.Any(), incidentID).Return(&models.Incident{
		ID:                  incidentID,
		CitizenID:           "citizen-1",
		Status:              models.IncidentAccepted,
		AssignedResponderID: "responder-1",
	}, nil)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/sos/%s", incidentID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SOSResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "responder-1", resp.AssignedResponderID)
}

func TestGetSOS_InvalidID(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/sos/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestGetSOS_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()

	m.dispatch.EXPECT().GetIncident(gomock.Any(), incidentID).Return(nil, service.ErrIncidentNotFound)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/sos/%s", incidentID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestCancelSOS_Success(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CancelSOSRequest{CitizenID: "citizen-1"}

	m.dispatch.EXPECT().CancelIncident(gomock.Any(), incidentID, "citizen-1").Return(nil)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/sos/%s/cancel", incidentID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCancelSOS_NotOwner(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CancelSOSRequest{CitizenID: "someone-else"}

	m.dispatch.EXPECT().CancelIncident(gomock.Any(), incidentID, "someone-else").Return(service.ErrNotParticipant)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/sos/%s/cancel", incidentID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelSOS_AlreadyTerminal(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CancelSOSRequest{CitizenID: "citizen-1"}

	m.dispatch.EXPECT().CancelIncident(gomock.Any(), incidentID, "citizen-1").Return(service.ErrInvalidTransition)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/sos/%s/cancel", incidentID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteSOS_Success(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CompleteSOSRequest{ActorID: "responder-1"}

	m.dispatch.EXPECT().CompleteIncident(gomock.Any(), incidentID, "responder-1").Return(nil)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/sos/%s/complete", incidentID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompleteSOS_NotParticipant(t *testing.T) {
	m, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CompleteSOSRequest{ActorID: "stranger"}

	m.dispatch.EXPECT().CompleteIncident(gomock.Any(), incidentID, "stranger").Return(service.ErrNotParticipant)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/sos/%s/complete", incidentID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetHotspots_Success(t *testing.T) {
	m, router := newTestHandler(t)
	clusters := []models.Cluster{
		{Center: [2]float64{72.8311, 21.1702}, RadiusMeters: 1500, Density: 12, PrimaryType: "theft"},
	}

	m.hotspots.EXPECT().GetHotspots(gomock.Any()).Return(clusters, nil)

	w := makeRequest(router, "GET", "/api/v1/hotspots", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HotspotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "theft", resp.Clusters[0].PrimaryType)
}

func TestGetHotspots_ServiceError(t *testing.T) {
	m, router := newTestHandler(t)

	m.hotspots.EXPECT().GetHotspots(gomock.Any()).Return(nil, errors.New("boom"))

	w := makeRequest(router, "GET", "/api/v1/hotspots", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRefreshHotspots_Success(t *testing.T) {
	m, router := newTestHandler(t)

	m.hotspots.EXPECT().Refresh(gomock.Any()).Return([]models.Cluster{}, nil)

	w := makeRequest(router, "POST", "/api/v1/hotspots/refresh", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HotspotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestRefreshHotspots_ModelFailure(t *testing.T) {
	m, router := newTestHandler(t)

	m.hotspots.EXPECT().Refresh(gomock.Any()).Return(nil, errors.New("model crashed"))

	w := makeRequest(router, "POST", "/api/v1/hotspots/refresh", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "hotspot model run failed")
}

func TestCheckLocation_Danger(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := LocationCheckRequest{
		UserID:    "user123",
		Latitude:  21.1702,
		Longitude: 72.8311,
	}
	matches := []models.Cluster{
		{Center: [2]float64{72.8311, 21.1702}, RadiusMeters: 2000, Density: 9, PrimaryType: "assault"},
	}

	m.geofence.EXPECT().CheckLocation(gomock.Any(), "user123", geo.Point{Lat: 21.1702, Lng: 72.8311}).
		Return(matches, nil)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/location/check", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HotspotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestCheckLocation_Safe(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := LocationCheckRequest{
		UserID:    "user123",
		Latitude:  22.5,
		Longitude: 73.5,
	}

	m.geofence.EXPECT().CheckLocation(gomock.Any(), "user123", gomock.Any()).Return([]models.Cluster{}, nil)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/location/check", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HotspotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestCheckLocation_ValidationError(t *testing.T) {
	_, router := newTestHandler(t)
	reqBody := LocationCheckRequest{
		Latitude:  21.17,
		Longitude: 72.83,
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/location/check", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'UserID' failed on the 'required' tag")
}

func TestGetStats_Success(t *testing.T) {
	m, router := newTestHandler(t)

	m.geofence.EXPECT().GetStats(gomock.Any()).Return(123, nil)

	w := makeRequest(router, "GET", "/api/v1/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 123, resp.UserCount)
}

func TestHealthCheck_Success(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestServeWS_BadRole(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/ws?role=admin&subject_id=x", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "role and subject_id are required")
}

func TestServeWS_MissingSubject(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/ws?role=citizen", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_BearerFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
