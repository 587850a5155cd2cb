package models

import (
	"database/sql/driver"
	"encoding/json"
)

// WeatherSnapshot captures conditions at logging time. Immutable once
// attached to a SymptomRecord; sourced either from the live lookup or the
// simulated provider.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	UVIndex     float64 `json:"uv_index"`
}

// Value implements driver.Valuer interface
func (w *WeatherSnapshot) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner interface
func (w *WeatherSnapshot) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, w)
}

// Summary reduces the snapshot to the fields allowed in prompt summaries
func (w *WeatherSnapshot) Summary() *WeatherSummary {
	if w == nil {
		return nil
	}
	return &WeatherSummary{
		Temperature: w.Temperature,
		Humidity:    w.Humidity,
		Description: w.Description,
	}
}
