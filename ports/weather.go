package ports

import (
	"context"

	"flarelog/models"
)

// WeatherPort looks up current conditions for a coordinate. Implementations
// return (nil, err) on failure; callers treat an absent snapshot as "no
// weather attached", never as a hard error.
type WeatherPort interface {
	Current(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error)
}
