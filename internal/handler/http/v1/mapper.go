package v1

import "github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"

// ModelToSOSResponse converts the domain incident into the API representation.
func ModelToSOSResponse(model *models.Incident) *SOSResponse {
	return &SOSResponse{
		ID:                  model.ID,
		CitizenID:           model.CitizenID,
		Latitude:            model.Latitude,
		Longitude:           model.Longitude,
		Status:              string(model.Status),
		AssignedResponderID: model.AssignedResponderID,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

// ClustersToResponse converts model clusters into the API cluster set.
func ClustersToResponse(clusters []models.Cluster) HotspotsResponse {
	responses := make([]ClusterResponse, len(clusters))
	for i, c := range clusters {
		responses[i] = ClusterResponse{
			Center:       c.Center,
			RadiusMeters: c.RadiusMeters,
			Density:      c.Density,
			PrimaryType:  c.PrimaryType,
		}
	}
	return HotspotsResponse{Clusters: responses, Count: len(responses)}
}
