// Package weatherapi implements forecast.Provider on top of api.weatherapi.com.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather_notification_bot/internal/domain/forecast"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Provider fetches current conditions and multi-day forecasts.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	loc     *time.Location
	circuit *gobreaker.CircuitBreaker
	logger  *logrus.Entry
}

// NewProvider builds a provider. timeout bounds every request end to end.
func NewProvider(baseURL, apiKey string, timeout time.Duration, loc *time.Location, logger *logrus.Entry) *Provider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("Circuit breaker state changed")
		},
	})

	return &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		loc:     loc,
		circuit: cb,
		logger:  logger,
	}
}

// FetchForecast requests current.json for KindCurrent and forecast.json with
// kind.Days() days otherwise. Transport failures and non-2xx statuses wrap
// forecast.ErrProviderUnavailable; undecodable bodies wrap forecast.ErrProviderMalformed.
func (p *Provider) FetchForecast(ctx context.Context, location string, kind forecast.Kind) (*forecast.Data, error) {
	endpoint := p.baseURL + "/current.json"
	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", location)
	values.Set("aqi", "no")
	if days := kind.Days(); days > 0 {
		endpoint = p.baseURL + "/forecast.json"
		values.Set("days", strconv.Itoa(days))
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncate(body, 200))
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open: %v", forecast.ErrProviderUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", forecast.ErrProviderUnavailable, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", forecast.ErrProviderUnavailable)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", forecast.ErrProviderMalformed, err)
	}
	return p.normalize(location, kind, &payload)
}

func (p *Provider) normalize(location string, kind forecast.Kind, payload *apiResponse) (*forecast.Data, error) {
	if payload.Current == nil {
		return nil, fmt.Errorf("%w: missing current conditions", forecast.ErrProviderMalformed)
	}
	c := payload.Current
	data := &forecast.Data{
		Location: location,
		Current: forecast.Conditions{
			Text:       c.Condition.Text,
			TempC:      c.TempC,
			FeelsLikeC: c.FeelslikeC,
			Cloud:      c.Cloud,
			Humidity:   c.Humidity,
			WindKph:    c.WindKph,
			PressureMb: c.PressureMb,
		},
	}

	if kind == forecast.KindCurrent {
		return data, nil
	}
	if payload.Forecast == nil {
		return nil, fmt.Errorf("%w: missing forecast section", forecast.ErrProviderMalformed)
	}

	for _, fd := range payload.Forecast.Forecastday {
		date, err := time.ParseInLocation("2006-01-02", fd.Date, p.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: bad forecast date %q", forecast.ErrProviderMalformed, fd.Date)
		}
		day := forecast.Day{
			Date:         date,
			MaxTempC:     fd.Day.MaxtempC,
			MinTempC:     fd.Day.MintempC,
			Condition:    fd.Day.Condition.Text,
			ChanceOfRain: fd.Day.DailyChanceOfRain,
		}
		if fd.Astro != nil && fd.Astro.Sunrise != "" && fd.Astro.Sunset != "" {
			day.Astro = &forecast.Astro{Sunrise: fd.Astro.Sunrise, Sunset: fd.Astro.Sunset}
		}
		for _, h := range fd.Hour {
			day.Hours = append(day.Hours, forecast.Hour{
				Time:      time.Unix(h.TimeEpoch, 0).In(p.loc),
				TempC:     h.TempC,
				Condition: h.Condition.Text,
			})
		}
		data.Days = append(data.Days, day)
	}
	return data, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
