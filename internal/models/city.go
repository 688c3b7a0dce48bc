package models

type City struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	PointsOfInterest []PointOfInterest `json:"pointsOfInterest"`
}

// Clone returns a deep copy of the city.
func (c City) Clone() City {
	clone := c
	clone.PointsOfInterest = make([]PointOfInterest, len(c.PointsOfInterest))
	copy(clone.PointsOfInterest, c.PointsOfInterest)
	return clone
}

// CityWithoutPointsOfInterest is returned when a caller asks for a city without
// its points of interest.
type CityWithoutPointsOfInterest struct {
	ID                       int    `json:"id"`
	Name                     string `json:"name"`
	Description              string `json:"description"`
	NumberOfPointsOfInterest int    `json:"numberOfPointsOfInterest"`
}

func (c City) Summary() CityWithoutPointsOfInterest {
	return CityWithoutPointsOfInterest{
		ID:                       c.ID,
		Name:                     c.Name,
		Description:              c.Description,
		NumberOfPointsOfInterest: len(c.PointsOfInterest),
	}
}
