package migrations

import "cityinfo-api/internal/models"

// SeedCities returns the sample dataset the API starts with.
func SeedCities() []models.City {
	return []models.City{
		{
			ID:          1,
			Name:        "New York City",
			Description: "The one with that big park.",
			PointsOfInterest: []models.PointOfInterest{
				{
					ID:          1,
					Name:        "Central Park",
					Description: "The most visited urban park in the United States.",
				},
				{
					ID:          2,
					Name:        "Empire State Building",
					Description: "A 102-story skyscraper located in Midtown Manhattan.",
				},
			},
		},
		{
			ID:          2,
			Name:        "Antwerp",
			Description: "The one with the cathedral that was never really finished.",
			PointsOfInterest: []models.PointOfInterest{
				{
					ID:          3,
					Name:        "Cathedral of Our Lady",
					Description: "A Gothic style cathedral, conceived by architects Jan and Pieter Appelmans.",
				},
				{
					ID:          4,
					Name:        "Antwerp Central Station",
					Description: "The finest example of railway architecture in Belgium.",
				},
			},
		},
		{
			ID:          3,
			Name:        "Paris",
			Description: "The one with that big tower.",
			PointsOfInterest: []models.PointOfInterest{
				{
					ID:          5,
					Name:        "Eiffel Tower",
					Description: "A wrought iron lattice tower on the Champ de Mars, named after engineer Gustave Eiffel.",
				},
				{
					ID:          6,
					Name:        "The Louvre",
					Description: "The world's largest museum.",
				},
			},
		},
	}
}
