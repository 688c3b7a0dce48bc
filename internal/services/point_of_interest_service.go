package services

import (
	"context"
	"time"

	"cityinfo-api/internal/logger"
	"cityinfo-api/internal/models"
	"cityinfo-api/internal/patch"
	"cityinfo-api/internal/repository"

	"github.com/sirupsen/logrus"
)

type PointOfInterestService interface {
	ListPointsOfInterest(ctx context.Context, cityID int) ([]models.PointOfInterest, error)
	GetPointOfInterest(ctx context.Context, cityID, pointOfInterestID int) (*models.PointOfInterest, error)
	CreatePointOfInterest(ctx context.Context, cityID int, input models.PointOfInterestForCreation) (*models.PointOfInterest, error)
	UpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int, input models.PointOfInterestForUpdate) error
	PartiallyUpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int, document []models.PatchOperation) error
	DeletePointOfInterest(ctx context.Context, cityID, pointOfInterestID int) error
}

type pointOfInterestService struct {
	cityRepo repository.CityRepository
	cache    CacheService
	cacheTTL time.Duration
}

func NewPointOfInterestService(cityRepo repository.CityRepository, cache CacheService, cacheTTL time.Duration) PointOfInterestService {
	if cache == nil {
		cache = NoopCacheService{}
	}
	return &pointOfInterestService{
		cityRepo: cityRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *pointOfInterestService) ListPointsOfInterest(ctx context.Context, cityID int) ([]models.PointOfInterest, error) {
	return readThrough(ctx, s.cache, s.cityRepo, pointsOfInterestCacheKey(cityID), s.cacheTTL, func() ([]models.PointOfInterest, error) {
		return s.cityRepo.ListPointsOfInterest(ctx, cityID)
	})
}

func (s *pointOfInterestService) GetPointOfInterest(ctx context.Context, cityID, pointOfInterestID int) (*models.PointOfInterest, error) {
	return s.cityRepo.GetPointOfInterest(ctx, cityID, pointOfInterestID)
}

func (s *pointOfInterestService) CreatePointOfInterest(ctx context.Context, cityID int, input models.PointOfInterestForCreation) (*models.PointOfInterest, error) {
	if err := ValidateModel(input); err != nil {
		return nil, err
	}

	pointOfInterest := &models.PointOfInterest{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.cityRepo.CreatePointOfInterest(ctx, cityID, pointOfInterest); err != nil {
		return nil, err
	}

	invalidateCity(ctx, s.cache, cityID)
	logger.LogEvent(logrus.InfoLevel, "Point of interest created", logrus.Fields{
		"city_id":              cityID,
		"point_of_interest_id": pointOfInterest.ID,
	})
	return pointOfInterest, nil
}

func (s *pointOfInterestService) UpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int, input models.PointOfInterestForUpdate) error {
	if err := ValidateModel(input); err != nil {
		return err
	}

	err := s.cityRepo.UpdatePointOfInterest(ctx, cityID, pointOfInterestID, func(stored *models.PointOfInterest) error {
		stored.Name = input.Name
		stored.Description = input.Description
		return nil
	})
	if err != nil {
		return err
	}

	invalidateCity(ctx, s.cache, cityID)
	return nil
}

// PartiallyUpdatePointOfInterest applies the patch document to a copy of the
// stored name and description. The stored record only changes when every
// operation succeeds and the result passes validation.
func (s *pointOfInterestService) PartiallyUpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int, document []models.PatchOperation) error {
	err := s.cityRepo.UpdatePointOfInterest(ctx, cityID, pointOfInterestID, func(stored *models.PointOfInterest) error {
		ops, err := patch.Parse(document)
		if err != nil {
			return err
		}

		toPatch := models.PointOfInterestForUpdate{
			Name:        stored.Name,
			Description: stored.Description,
		}
		patched, err := patch.Apply(toPatch, ops)
		if err != nil {
			return err
		}
		if err := ValidateModel(patched); err != nil {
			return err
		}

		stored.Name = patched.Name
		stored.Description = patched.Description
		return nil
	})
	if err != nil {
		return err
	}

	invalidateCity(ctx, s.cache, cityID)
	return nil
}

func (s *pointOfInterestService) DeletePointOfInterest(ctx context.Context, cityID, pointOfInterestID int) error {
	if err := s.cityRepo.DeletePointOfInterest(ctx, cityID, pointOfInterestID); err != nil {
		return err
	}

	invalidateCity(ctx, s.cache, cityID)
	logger.LogEvent(logrus.InfoLevel, "Point of interest deleted", logrus.Fields{
		"city_id":              cityID,
		"point_of_interest_id": pointOfInterestID,
	})
	return nil
}
