package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"cityinfo-api/internal/models"
	"cityinfo-api/internal/services"

	"github.com/gorilla/mux"
)

// GetPointOfInterestRoute names the route used to build Location headers for
// newly created points of interest.
const GetPointOfInterestRoute = "GetPointOfInterest"

type PointOfInterestHandler struct {
	pointOfInterestService services.PointOfInterestService
	router                 *mux.Router
}

// NewPointOfInterestHandler creates a handler. router must have a route named
// GetPointOfInterestRoute registered before the first create request.
func NewPointOfInterestHandler(pointOfInterestService services.PointOfInterestService, router *mux.Router) *PointOfInterestHandler {
	return &PointOfInterestHandler{
		pointOfInterestService: pointOfInterestService,
		router:                 router,
	}
}

// ListPointsOfInterest - GET /api/cities/{cityId}/pointsofinterest
func (h *PointOfInterestHandler) ListPointsOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, err := intVar(r, "cityId")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	pointsOfInterest, err := h.pointOfInterestService.ListPointsOfInterest(r.Context(), cityID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pointsOfInterest)
}

// GetPointOfInterest - GET /api/cities/{cityId}/pointsofinterest/{pointOfInterestId}
func (h *PointOfInterestHandler) GetPointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointOfInterestID, err := pointOfInterestVars(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	pointOfInterest, err := h.pointOfInterestService.GetPointOfInterest(r.Context(), cityID, pointOfInterestID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pointOfInterest)
}

// CreatePointOfInterest - POST /api/cities/{cityId}/pointsofinterest
func (h *PointOfInterestHandler) CreatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, err := intVar(r, "cityId")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var input models.PointOfInterestForCreation
	if err := decodeJSONBody(r, &input); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	created, err := h.pointOfInterestService.CreatePointOfInterest(r.Context(), cityID, input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	location, err := h.pointOfInterestLocation(r, cityID, created.ID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", location)
	respondWithJSON(w, http.StatusCreated, created)
}

// UpdatePointOfInterest - PUT /api/cities/{cityId}/pointsofinterest/{pointOfInterestId}
func (h *PointOfInterestHandler) UpdatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointOfInterestID, err := pointOfInterestVars(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var input models.PointOfInterestForUpdate
	if err := decodeJSONBody(r, &input); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.pointOfInterestService.UpdatePointOfInterest(r.Context(), cityID, pointOfInterestID, input); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PartiallyUpdatePointOfInterest - PATCH /api/cities/{cityId}/pointsofinterest/{pointOfInterestId}
// The body is a JSON Patch document targeting /name and /description.
func (h *PointOfInterestHandler) PartiallyUpdatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointOfInterestID, err := pointOfInterestVars(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var document []models.PatchOperation
	if err := decodeJSONBody(r, &document); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.pointOfInterestService.PartiallyUpdatePointOfInterest(r.Context(), cityID, pointOfInterestID, document); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePointOfInterest - DELETE /api/cities/{cityId}/pointsofinterest/{pointOfInterestId}
func (h *PointOfInterestHandler) DeletePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointOfInterestID, err := pointOfInterestVars(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.pointOfInterestService.DeletePointOfInterest(r.Context(), cityID, pointOfInterestID); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PointOfInterestHandler) pointOfInterestLocation(r *http.Request, cityID, pointOfInterestID int) (string, error) {
	route := h.router.Get(GetPointOfInterestRoute)
	if route == nil {
		return "", fmt.Errorf("route %q is not registered", GetPointOfInterestRoute)
	}

	u, err := route.URL(
		"cityId", strconv.Itoa(cityID),
		"pointOfInterestId", strconv.Itoa(pointOfInterestID),
	)
	if err != nil {
		return "", fmt.Errorf("build location: %w", err)
	}

	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	return u.String(), nil
}

func pointOfInterestVars(r *http.Request) (cityID, pointOfInterestID int, err error) {
	cityID, err = intVar(r, "cityId")
	if err != nil {
		return 0, 0, err
	}
	pointOfInterestID, err = intVar(r, "pointOfInterestId")
	if err != nil {
		return 0, 0, err
	}
	return cityID, pointOfInterestID, nil
}
