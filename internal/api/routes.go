package api

import (
	"net/http"

	"cityinfo-api/internal/api/handlers"
	"cityinfo-api/internal/middleware"
	"cityinfo-api/internal/pkg/errors"
	"cityinfo-api/internal/services"

	"github.com/gorilla/mux"
)

type Dependencies struct {
	CityService            services.CityService
	PointOfInterestService services.PointOfInterestService
	UptimeService          *services.UptimeService
	Cache                  services.CacheService
	CacheEnabled           bool
	RateLimiter            *middleware.RateLimiter
}

// SetupRoutes registers every route and wraps the router in the middleware
// chain, so unmatched requests are logged, counted and limited too.
func SetupRoutes(deps Dependencies) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, errors.NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, errors.NewAPIError("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed))
	})

	cityHandler := handlers.NewCityHandler(deps.CityService)
	pointOfInterestHandler := handlers.NewPointOfInterestHandler(deps.PointOfInterestService, router)

	router.HandleFunc("/health", handlers.HealthCheckHandler(deps.CityService, deps.Cache, deps.CacheEnabled)).Methods(http.MethodGet)
	router.Handle("/uptime", handlers.NewUptimeHandler(deps.UptimeService)).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/cities", cityHandler.ListCities).Methods(http.MethodGet)
	apiRouter.HandleFunc("/cities/{cityId}", cityHandler.GetCity).Methods(http.MethodGet)

	apiRouter.HandleFunc("/cities/{cityId}/pointsofinterest", pointOfInterestHandler.ListPointsOfInterest).Methods(http.MethodGet)
	apiRouter.HandleFunc("/cities/{cityId}/pointsofinterest/{pointOfInterestId}", pointOfInterestHandler.GetPointOfInterest).
		Methods(http.MethodGet).
		Name(handlers.GetPointOfInterestRoute)
	apiRouter.HandleFunc("/cities/{cityId}/pointsofinterest", pointOfInterestHandler.CreatePointOfInterest).Methods(http.MethodPost)
	apiRouter.HandleFunc("/cities/{cityId}/pointsofinterest/{pointOfInterestId}", pointOfInterestHandler.UpdatePointOfInterest).Methods(http.MethodPut)
	apiRouter.HandleFunc("/cities/{cityId}/pointsofinterest/{pointOfInterestId}", pointOfInterestHandler.PartiallyUpdatePointOfInterest).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/cities/{cityId}/pointsofinterest/{pointOfInterestId}", pointOfInterestHandler.DeletePointOfInterest).Methods(http.MethodDelete)

	var handler http.Handler = router
	if deps.RateLimiter != nil {
		handler = deps.RateLimiter.RateLimit(handler)
	}
	handler = middleware.Recovery(handler)
	handler = middleware.NewUptimeMiddleware(deps.UptimeService).Middleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestID(handler)
	return handler
}
