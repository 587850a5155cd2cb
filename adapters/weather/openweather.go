package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flarelog/models"
)

// OpenWeatherClient fetches current conditions from the OpenWeather API
type OpenWeatherClient struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewOpenWeatherClient creates a live weather lookup client
func NewOpenWeatherClient(apiKey, baseURL string, timeout time.Duration) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherClient{APIKey: apiKey, BaseURL: baseURL, Timeout: timeout}
}

// Current implements ports.WeatherPort against the current-conditions endpoint
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", lat))
	query.Set("lon", fmt.Sprintf("%.4f", lon))
	query.Set("units", "metric")
	query.Set("appid", c.APIKey)

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/weather?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather http %d: %s", resp.StatusCode, string(body))
	}

	// Only the fields the snapshot needs; the API returns much more
	var decoded struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		UVI float64 `json:"uvi"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	snapshot := &models.WeatherSnapshot{
		Temperature: decoded.Main.Temp,
		FeelsLike:   decoded.Main.FeelsLike,
		Humidity:    decoded.Main.Humidity,
		Pressure:    decoded.Main.Pressure,
		WindSpeed:   decoded.Wind.Speed,
		UVIndex:     decoded.UVI,
	}
	if len(decoded.Weather) > 0 {
		snapshot.Description = decoded.Weather[0].Description
		snapshot.Icon = decoded.Weather[0].Icon
	}
	return snapshot, nil
}
