package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cityinfo-api/internal/logger"
	"cityinfo-api/internal/models"
	"cityinfo-api/internal/pkg/errors"
	"cityinfo-api/internal/repository"

	"github.com/sirupsen/logrus"
)

const citiesCacheKey = "cities"

type CityService interface {
	ListCities(ctx context.Context) ([]models.CityWithoutPointsOfInterest, error)
	GetCity(ctx context.Context, cityID int) (*models.City, error)
}

type cityService struct {
	cityRepo repository.CityRepository
	cache    CacheService
	cacheTTL time.Duration
}

func NewCityService(cityRepo repository.CityRepository, cache CacheService, cacheTTL time.Duration) CityService {
	if cache == nil {
		cache = NoopCacheService{}
	}
	return &cityService{
		cityRepo: cityRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *cityService) ListCities(ctx context.Context) ([]models.CityWithoutPointsOfInterest, error) {
	return readThrough(ctx, s.cache, s.cityRepo, citiesCacheKey, s.cacheTTL, func() ([]models.CityWithoutPointsOfInterest, error) {
		cities, err := s.cityRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		summaries := make([]models.CityWithoutPointsOfInterest, 0, len(cities))
		for _, c := range cities {
			summaries = append(summaries, c.Summary())
		}
		return summaries, nil
	})
}

func (s *cityService) GetCity(ctx context.Context, cityID int) (*models.City, error) {
	city, err := readThrough(ctx, s.cache, s.cityRepo, cityCacheKey(cityID), s.cacheTTL, func() (models.City, error) {
		city, err := s.cityRepo.GetByID(ctx, cityID)
		if err != nil {
			return models.City{}, err
		}
		return *city, nil
	})
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func cityCacheKey(cityID int) string {
	return fmt.Sprintf("%s:%d", citiesCacheKey, cityID)
}

func pointsOfInterestCacheKey(cityID int) string {
	return fmt.Sprintf("%s:%d:pointsofinterest", citiesCacheKey, cityID)
}

// readThrough serves key from the cache and falls back to load on a miss or
// a cache failure. Loader errors are never cached. A value loaded before a
// mutation is never left in the cache: the write is skipped when the
// repository generation moved during the load, and undone when it moved
// during the write.
func readThrough[T any](ctx context.Context, cache CacheService, repo repository.CityRepository, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if cached, err := cache.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			return value, nil
		}
		logger.Logger.WithField("key", key).Warn("Discarding undecodable cache entry")
	} else if !errors.Is(err, ErrCacheMiss) {
		logger.Logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache read failed")
	}

	generation := repo.Generation()
	value, err := load()
	if err != nil {
		return value, err
	}
	if repo.Generation() != generation {
		return value, nil
	}

	if err := cache.Set(ctx, key, value, ttl); err != nil {
		logger.Logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache write failed")
		return value, nil
	}
	if repo.Generation() != generation {
		if err := cache.Delete(ctx, key); err != nil {
			logger.Logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache invalidation failed")
		}
	}
	return value, nil
}

// invalidateCity drops every cached view that includes the city.
func invalidateCity(ctx context.Context, cache CacheService, cityID int) {
	for _, key := range []string{citiesCacheKey, cityCacheKey(cityID), pointsOfInterestCacheKey(cityID)} {
		if err := cache.Delete(ctx, key); err != nil {
			logger.Logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache invalidation failed")
		}
	}
}
