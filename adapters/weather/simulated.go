package weather

import (
	"context"
	"math"
	"time"

	"flarelog/models"
)

// descriptions cycle deterministically with the simulated conditions
var simulatedConditions = []struct {
	description string
	icon        string
}{
	{"clear sky", "01d"},
	{"few clouds", "02d"},
	{"scattered clouds", "03d"},
	{"light rain", "10d"},
	{"overcast clouds", "04d"},
}

// SimulatedProvider generates repeatable pseudo-weather derived from the
// date and coordinates. Used offline and in tests; the same day at the same
// place always yields the same snapshot.
type SimulatedProvider struct {
	now func() time.Time
}

// NewSimulatedProvider creates a deterministic weather source
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{now: time.Now}
}

// Current implements ports.WeatherPort without any network access
func (p *SimulatedProvider) Current(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	return p.ForDate(p.now(), lat, lon), nil
}

// ForDate computes the snapshot for an arbitrary day
func (p *SimulatedProvider) ForDate(date time.Time, lat, lon float64) *models.WeatherSnapshot {
	day := float64(date.YearDay())

	// Seasonal sinusoid shifted by latitude, plus a short-cycle wobble so
	// consecutive days differ
	seasonal := 15 - math.Abs(lat)/6 + 10*math.Sin(2*math.Pi*(day-80)/365)
	wobble := 3 * math.Sin(day/3+lon/30)
	temp := round1(seasonal + wobble)

	humidity := round1(55 + 25*math.Sin(day/5+lat/15))
	pressure := round1(1013 + 12*math.Sin(day/7))
	wind := round1(3 + 4*math.Abs(math.Sin(day/4)))
	uv := round1(math.Max(0, 5+4*math.Sin(2*math.Pi*(day-80)/365)))

	cond := simulatedConditions[date.YearDay()%len(simulatedConditions)]

	return &models.WeatherSnapshot{
		Temperature: temp,
		FeelsLike:   round1(temp - wind/2),
		Humidity:    humidity,
		Pressure:    pressure,
		Description: cond.description,
		Icon:        cond.icon,
		WindSpeed:   wind,
		UVIndex:     uv,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
