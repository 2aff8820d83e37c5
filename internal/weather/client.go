// Package weather implements the Open-Meteo forecast gateway and the
// localized rendering of daily forecasts.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MaxForecastDays is the upper bound accepted by the Open-Meteo API.
const MaxForecastDays = 16

// Day is one day of forecast data.
type Day struct {
	Date          time.Time
	Code          int
	TempMax       float64
	TempMin       float64
	WindMax       float64
	Precipitation float64
}

// Forecast is a per-day sequence of forecast values.
type Forecast struct {
	Days []Day
}

// Client fetches weather forecasts for a coordinate pair.
type Client interface {
	Forecast(ctx context.Context, lat, lon float64, days int) (*Forecast, error)
}

// HTTPClient is the Open-Meteo implementation of Client.
type HTTPClient struct {
	baseURL    string
	timezone   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates an Open-Meteo client. baseURL should point at the
// API root (e.g. https://api.open-meteo.com); timezone is passed through
// to the API so daily buckets align with the user's local days.
func NewHTTPClient(baseURL, timezone string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		timezone:   timezone,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "weather_client"),
	}
}

type apiResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		Weathercode      []int     `json:"weathercode"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindspeedMax     []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Forecast requests a daily forecast. days is clamped to MaxForecastDays.
func (c *HTTPClient) Forecast(ctx context.Context, lat, lon float64, days int) (*Forecast, error) {
	if days > MaxForecastDays {
		days = MaxForecastDays
	}
	if days <= 0 {
		return nil, fmt.Errorf("forecast days must be positive, got %d", days)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max")
	q.Set("timezone", c.timezone)
	q.Set("forecast_days", strconv.Itoa(days))

	reqURL := c.baseURL + "/v1/forecast?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Weather request failed", "error", err)
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "Weather API returned non-OK status", "status", resp.StatusCode)
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return forecastFromAPI(payload)
}

func forecastFromAPI(payload apiResponse) (*Forecast, error) {
	d := payload.Daily
	n := len(d.Time)
	if n == 0 {
		return nil, fmt.Errorf("weather response contains no daily data")
	}
	if len(d.Weathercode) != n || len(d.TemperatureMax) != n || len(d.TemperatureMin) != n ||
		len(d.PrecipitationSum) != n || len(d.WindspeedMax) != n {
		return nil, fmt.Errorf("weather response daily arrays have mismatched lengths")
	}

	f := &Forecast{Days: make([]Day, 0, n)}
	for i := 0; i < n; i++ {
		date, err := time.Parse("2006-01-02", d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("invalid date %q in weather response: %w", d.Time[i], err)
		}
		f.Days = append(f.Days, Day{
			Date:          date,
			Code:          d.Weathercode[i],
			TempMax:       d.TemperatureMax[i],
			TempMin:       d.TemperatureMin[i],
			WindMax:       d.WindspeedMax[i],
			Precipitation: d.PrecipitationSum[i],
		})
	}
	return f, nil
}
