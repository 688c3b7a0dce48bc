package services

import (
	"context"
	"testing"
	"time"

	"cityinfo-api/internal/models"
	"cityinfo-api/internal/pkg/errors"
	"cityinfo-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCities(t *testing.T) {
	svc := NewCityService(repository.NewCityRepository(seedCities()), nil, time.Minute)

	cities, err := svc.ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CityWithoutPointsOfInterest{
		{ID: 1, Name: "New York City", NumberOfPointsOfInterest: 2},
		{ID: 2, Name: "Antwerp", NumberOfPointsOfInterest: 0},
	}, cities)
}

func TestGetCity(t *testing.T) {
	svc := NewCityService(repository.NewCityRepository(seedCities()), nil, time.Minute)

	city, err := svc.GetCity(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "New York City", city.Name)
	assert.Len(t, city.PointsOfInterest, 2)

	_, err = svc.GetCity(context.Background(), 3)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCityViewsInvalidatedByPointOfInterestChanges(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	repo := repository.NewCityRepository(seedCities())
	cities := NewCityService(repo, cache, time.Minute)
	pois := NewPointOfInterestService(repo, cache, time.Minute)

	_, err := cities.ListCities(ctx)
	require.NoError(t, err)
	_, err = cities.GetCity(ctx, 1)
	require.NoError(t, err)
	assert.True(t, cache.has(citiesCacheKey))
	assert.True(t, cache.has(cityCacheKey(1)))

	require.NoError(t, pois.DeletePointOfInterest(ctx, 1, 1))
	assert.False(t, cache.has(citiesCacheKey))
	assert.False(t, cache.has(cityCacheKey(1)))

	list, err := cities.ListCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list[0].NumberOfPointsOfInterest)
}

func TestValidateModel(t *testing.T) {
	assert.NoError(t, ValidateModel(models.PointOfInterestForCreation{Name: "Park"}))

	err := ValidateModel(models.PointOfInterestForUpdate{Name: "", Description: string(make([]byte, 201))})
	require.ErrorIs(t, err, errors.ErrValidation)

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"you should provide a name value"}, verr.Fields["name"])
	assert.Equal(t, []string{"must be at most 200 characters"}, verr.Fields["description"])
}
