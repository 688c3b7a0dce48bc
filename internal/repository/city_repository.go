package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"cityinfo-api/internal/models"
	"cityinfo-api/internal/pkg/errors"
)

type CityRepository interface {
	List(ctx context.Context) ([]models.City, error)
	GetByID(ctx context.Context, cityID int) (*models.City, error)
	ListPointsOfInterest(ctx context.Context, cityID int) ([]models.PointOfInterest, error)
	GetPointOfInterest(ctx context.Context, cityID, pointOfInterestID int) (*models.PointOfInterest, error)
	CreatePointOfInterest(ctx context.Context, cityID int, pointOfInterest *models.PointOfInterest) error
	UpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int, mutate func(*models.PointOfInterest) error) error
	DeletePointOfInterest(ctx context.Context, cityID, pointOfInterestID int) error
	// Generation changes whenever a mutation commits.
	Generation() uint64
}

// cityRepository keeps the whole dataset in memory. Every read hands out
// copies and every mutation runs under the write lock.
type cityRepository struct {
	mu         sync.RWMutex
	cities     []models.City
	generation atomic.Uint64
}

func NewCityRepository(seed []models.City) CityRepository {
	cities := make([]models.City, len(seed))
	for i, c := range seed {
		cities[i] = c.Clone()
	}
	return &cityRepository{cities: cities}
}

func (r *cityRepository) List(ctx context.Context) ([]models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cities := make([]models.City, len(r.cities))
	for i, c := range r.cities {
		cities[i] = c.Clone()
	}
	return cities, nil
}

func (r *cityRepository) GetByID(ctx context.Context, cityID int) (*models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	city, err := r.findCity(cityID)
	if err != nil {
		return nil, err
	}
	clone := city.Clone()
	return &clone, nil
}

func (r *cityRepository) ListPointsOfInterest(ctx context.Context, cityID int) ([]models.PointOfInterest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	city, err := r.findCity(cityID)
	if err != nil {
		return nil, err
	}
	return city.Clone().PointsOfInterest, nil
}

func (r *cityRepository) GetPointOfInterest(ctx context.Context, cityID, pointOfInterestID int) (*models.PointOfInterest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	city, err := r.findCity(cityID)
	if err != nil {
		return nil, err
	}
	idx, err := findPointOfInterest(city, pointOfInterestID)
	if err != nil {
		return nil, err
	}
	pointOfInterest := city.PointsOfInterest[idx]
	return &pointOfInterest, nil
}

// CreatePointOfInterest assigns the next identifier, which is one above the
// highest identifier in any city, and appends the record to the city.
func (r *cityRepository) CreatePointOfInterest(ctx context.Context, cityID int, pointOfInterest *models.PointOfInterest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	city, err := r.findCity(cityID)
	if err != nil {
		return err
	}

	pointOfInterest.ID = r.maxPointOfInterestID() + 1
	city.PointsOfInterest = append(city.PointsOfInterest, *pointOfInterest)
	r.generation.Add(1)
	return nil
}

// UpdatePointOfInterest runs mutate against a copy of the stored record and
// stores the copy only when mutate succeeds. The identifier cannot change.
func (r *cityRepository) UpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int, mutate func(*models.PointOfInterest) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	city, err := r.findCity(cityID)
	if err != nil {
		return err
	}
	idx, err := findPointOfInterest(city, pointOfInterestID)
	if err != nil {
		return err
	}

	updated := city.PointsOfInterest[idx]
	if err := mutate(&updated); err != nil {
		return err
	}
	updated.ID = pointOfInterestID
	city.PointsOfInterest[idx] = updated
	r.generation.Add(1)
	return nil
}

func (r *cityRepository) DeletePointOfInterest(ctx context.Context, cityID, pointOfInterestID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	city, err := r.findCity(cityID)
	if err != nil {
		return err
	}
	idx, err := findPointOfInterest(city, pointOfInterestID)
	if err != nil {
		return err
	}

	city.PointsOfInterest = append(city.PointsOfInterest[:idx], city.PointsOfInterest[idx+1:]...)
	r.generation.Add(1)
	return nil
}

func (r *cityRepository) Generation() uint64 {
	return r.generation.Load()
}

// findCity must be called with r.mu held.
func (r *cityRepository) findCity(cityID int) (*models.City, error) {
	for i := range r.cities {
		if r.cities[i].ID == cityID {
			return &r.cities[i], nil
		}
	}
	return nil, fmt.Errorf("city %d: %w", cityID, errors.ErrNotFound)
}

func (r *cityRepository) maxPointOfInterestID() int {
	maxID := 0
	for _, c := range r.cities {
		for _, p := range c.PointsOfInterest {
			if p.ID > maxID {
				maxID = p.ID
			}
		}
	}
	return maxID
}

func findPointOfInterest(city *models.City, pointOfInterestID int) (int, error) {
	for i, p := range city.PointsOfInterest {
		if p.ID == pointOfInterestID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("point of interest %d in city %d: %w", pointOfInterestID, city.ID, errors.ErrNotFound)
}
