// internal/domain/forecast/forecast.go
package forecast

import (
	"context"
	"time"
)

// Kind selects which provider request shape and report rendering to use.
type Kind string

const (
	KindCurrent Kind = "current"
	KindHourly  Kind = "hourly"
	KindWeekly  Kind = "weekly"
)

// ParseKind accepts the wire names of a forecast kind. "today" is the
// legacy name of KindCurrent still carried by older inline keyboards.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "current", "today":
		return KindCurrent, true
	case "hourly":
		return KindHourly, true
	case "weekly":
		return KindWeekly, true
	default:
		return "", false
	}
}

// Days is the number of forecast days requested from the provider for a kind.
// Zero means a current-conditions request.
func (k Kind) Days() int {
	switch k {
	case KindHourly:
		return 2
	case KindWeekly:
		return 7
	default:
		return 0
	}
}

// Conditions are the current conditions at a location.
type Conditions struct {
	Text       string
	TempC      float64
	FeelsLikeC float64
	Cloud      int
	Humidity   int
	WindKph    float64
	PressureMb float64
}

// Astro holds sunrise/sunset as reported by the provider (local clock strings, e.g. "06:41 AM").
type Astro struct {
	Sunrise string
	Sunset  string
}

// Hour is one hourly slot of a forecast day.
type Hour struct {
	Time      time.Time
	TempC     float64
	Condition string
}

// Day is one forecast day.
type Day struct {
	Date         time.Time
	MaxTempC     float64
	MinTempC     float64
	Condition    string
	ChanceOfRain int
	Astro        *Astro // nil when the provider omitted astro data
	Hours        []Hour
}

// Data is a normalized provider response.
type Data struct {
	Location string
	Current  Conditions
	Days     []Day // empty for KindCurrent requests
}

// Report is a renderable forecast result produced by the coordinator.
type Report struct {
	Kind        Kind
	Location    string
	Current     Conditions
	Days        []Day
	Astro       *Astro    // only set for KindCurrent, nil if unavailable
	GeneratedAt time.Time // in the configured local zone
}

// Provider is the external weather data source.
type Provider interface {
	FetchForecast(ctx context.Context, location string, kind Kind) (*Data, error)
}
