package handlers

import (
	"net/http"
	"strconv"

	"cityinfo-api/internal/pkg/errors"
	"cityinfo-api/internal/services"
)

type CityHandler struct {
	cityService services.CityService
}

func NewCityHandler(cityService services.CityService) *CityHandler {
	return &CityHandler{
		cityService: cityService,
	}
}

// ListCities - GET /api/cities
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cityService.ListCities(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, cities)
}

// GetCity - GET /api/cities/{cityId}?includePointsOfInterest=true
func (h *CityHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	cityID, err := intVar(r, "cityId")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	includePointsOfInterest := false
	if raw := r.URL.Query().Get("includePointsOfInterest"); raw != "" {
		includePointsOfInterest, err = strconv.ParseBool(raw)
		if err != nil {
			respondWithServiceError(w, r, errors.Wrap(errors.ErrInvalidInput, "includePointsOfInterest must be true or false."))
			return
		}
	}

	city, err := h.cityService.GetCity(r.Context(), cityID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if includePointsOfInterest {
		respondWithJSON(w, http.StatusOK, city)
		return
	}
	respondWithJSON(w, http.StatusOK, city.Summary())
}
