package handlers

import (
	"fmt"
	"net/http"
	"time"

	"cityinfo-api/internal/services"
)

// UptimeHandler handles HTTP requests related to uptime
type UptimeHandler struct {
	service *services.UptimeService
}

func NewUptimeHandler(service *services.UptimeService) *UptimeHandler {
	return &UptimeHandler{service: service}
}

// UptimeResponse is the JSON response structure for uptime information
type UptimeResponse struct {
	Uptime           float64            `json:"uptime"`
	UptimePercentage string             `json:"uptimePercentage"`
	Description      string             `json:"description"`
	Status           string             `json:"status"`
	TotalUptime      string             `json:"totalUptime"`
	LastDowntime     string             `json:"lastDowntime,omitempty"`
	TotalRequests    int                `json:"totalRequests"`
	ErrorCount       int                `json:"errorCount"`
	Anomalies        []services.Anomaly `json:"anomalies"`
}

// ServeHTTP handles the HTTP request for uptime information
func (h *UptimeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uptimeData := h.service.GetUptimeData()

	response := UptimeResponse{
		Uptime:           uptimeData.Uptime,
		UptimePercentage: fmt.Sprintf("%.2f%%", uptimeData.Uptime),
		Description:      getUptimeDescription(uptimeData.Uptime),
		Status:           getUptimeStatus(uptimeData.Uptime),
		TotalUptime:      uptimeData.TotalUptime.String(),
		TotalRequests:    uptimeData.TotalRequests,
		ErrorCount:       uptimeData.ErrorCount,
		Anomalies:        h.service.GetAnomalies(),
	}
	if !uptimeData.LastDowntime.IsZero() {
		response.LastDowntime = uptimeData.LastDowntime.Format(time.RFC3339)
	}

	respondWithJSON(w, http.StatusOK, response)
}

func getUptimeDescription(uptime float64) string {
	switch {
	case uptime >= 99.99:
		return "Rock-solid reliability"
	case uptime >= 99.9:
		return "Excellent uptime"
	case uptime >= 99.5:
		return "Very good uptime"
	case uptime >= 99.0:
		return "Good uptime"
	default:
		return "Needs improvement"
	}
}

func getUptimeStatus(uptime float64) string {
	switch {
	case uptime >= 99.99:
		return "Exceptional"
	case uptime >= 99.9:
		return "Excellent"
	case uptime >= 99.5:
		return "Very Good"
	case uptime >= 99.0:
		return "Good"
	default:
		return "Fair"
	}
}
