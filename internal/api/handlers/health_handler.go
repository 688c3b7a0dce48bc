package handlers

import (
	"context"
	"net/http"
	"time"

	"cityinfo-api/internal/services"
)

type HealthCheckResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Cache  string `json:"cache"`
	Cities int    `json:"cities"`
}

// HealthCheckHandler reports whether the dataset is readable and, when a
// cache is configured, whether it answers a ping.
func HealthCheckHandler(cityService services.CityService, cache services.CacheService, cacheEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthCheckResponse{
			Status: "API is running",
			Cache:  "Cache disabled",
		}

		cities, err := cityService.ListCities(r.Context())
		if err != nil {
			response.Store = "Store unavailable"
			respondWithJSON(w, http.StatusServiceUnavailable, response)
			return
		}
		response.Store = "Store is healthy"
		response.Cities = len(cities)

		if cacheEnabled {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := cache.Ping(ctx); err != nil {
				response.Cache = "Cache connection failed"
				respondWithJSON(w, http.StatusServiceUnavailable, response)
				return
			}
			response.Cache = "Cache connection is healthy"
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}
