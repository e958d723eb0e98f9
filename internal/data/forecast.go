package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"demand-profile/internal/targets"
)

// ForecastClient fetches annual energy targets from an external forecast
// service. The forecaster itself is a black box; this client only consumes
// its {year: annual_energy} output.
type ForecastClient struct {
	BaseURL string
	Client  *http.Client
}

func NewForecastClient(baseURL string) *ForecastClient {
	return &ForecastClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ForecastError represents an error from the forecast service.
type ForecastError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *ForecastError) Error() string {
	return e.Message
}

type forecastResponse struct {
	StatusCode int           `json:"status_code"`
	Data       []TargetEntry `json:"data"`
}

// FetchTargets queries the forecast service for annual targets over
// [startYear, endYear].
func (c *ForecastClient) FetchTargets(profileName string, startYear, endYear int) (targets.Annual, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("forecast base URL is required")
	}
	if startYear > endYear {
		return nil, fmt.Errorf("start_year must not be after end_year")
	}

	u, err := url.Parse(c.BaseURL + "/v1/forecast/annual")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("profile", profileName)
	q.Set("start_year", fmt.Sprint(startYear))
	q.Set("end_year", fmt.Sprint(endYear))
	u.RawQuery = q.Encode()

	log.Printf("[Forecast] Request: GET %s (profile=%s, years=%d..%d)", u.Path, profileName, startYear, endYear)

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("[Forecast] Request failed: %v (duration: %v)", err, time.Since(started))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Forecast] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, time.Since(started))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ForecastError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusNotFound:
		return nil, &ForecastError{
			StatusCode: resp.StatusCode,
			Code:       "PROFILE_NOT_FOUND",
			Message:    fmt.Sprintf("No forecast for profile %q", profileName),
		}
	default:
		return nil, &ForecastError{
			StatusCode: resp.StatusCode,
			Code:       "FORECAST_ERROR",
			Message:    fmt.Sprintf("Forecast service returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := targets.Annual{}
	for _, t := range result.Data {
		if t.Enabled != nil && !*t.Enabled {
			continue
		}
		if t.Year >= startYear && t.Year <= endYear && t.EnergyMWh > 0 {
			out[t.Year] = t.EnergyMWh
		}
	}
	log.Printf("[Forecast] Success: received %d target years", len(out))
	return out, nil
}
