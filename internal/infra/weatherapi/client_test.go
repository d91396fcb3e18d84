package weatherapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weather_notification_bot/internal/domain/forecast"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentBody = `{
  "location": {"name": "Chilonzor"},
  "current": {
    "temp_c": 24.5, "feelslike_c": 25.1, "cloud": 10, "humidity": 40,
    "wind_kph": 12.2, "pressure_mb": 1015, "condition": {"text": "Sunny"}
  }
}`

const forecastBody = `{
  "current": {"temp_c": 20, "feelslike_c": 19, "condition": {"text": "Cloudy"}},
  "forecast": {"forecastday": [
    {
      "date": "2026-10-18",
      "day": {"maxtemp_c": 22, "mintemp_c": 11, "daily_chance_of_rain": 30, "condition": {"text": "Patchy rain possible"}},
      "astro": {"sunrise": "06:41 AM", "sunset": "05:52 PM"},
      "hour": [{"time_epoch": 1792263600, "temp_c": 12.3, "condition": {"text": "Clear"}}]
    },
    {
      "date": "2026-10-19",
      "day": {"maxtemp_c": 18, "mintemp_c": 9, "daily_chance_of_rain": 80, "condition": {"text": "Moderate rain"}}
    }
  ]}
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	loc, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewProvider(srv.URL, "test-key", 2*time.Second, loc, logrus.NewEntry(logger))
}

func TestFetchForecast_Current(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Chilonzor", r.URL.Query().Get("q"))
		assert.Empty(t, r.URL.Query().Get("days"))
		_, _ = io.WriteString(w, currentBody)
	})

	data, err := p.FetchForecast(context.Background(), "Chilonzor", forecast.KindCurrent)
	require.NoError(t, err)
	assert.Equal(t, "Sunny", data.Current.Text)
	assert.Equal(t, 24.5, data.Current.TempC)
	assert.Equal(t, 25.1, data.Current.FeelsLikeC)
	assert.Equal(t, 40, data.Current.Humidity)
	assert.Empty(t, data.Days)
}

func TestFetchForecast_DaysPerKind(t *testing.T) {
	for kind, days := range map[forecast.Kind]string{forecast.KindHourly: "2", forecast.KindWeekly: "7"} {
		t.Run(string(kind), func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/forecast.json", r.URL.Path)
				assert.Equal(t, days, r.URL.Query().Get("days"))
				_, _ = io.WriteString(w, forecastBody)
			})

			data, err := p.FetchForecast(context.Background(), "Chilonzor", kind)
			require.NoError(t, err)
			require.Len(t, data.Days, 2)

			first := data.Days[0]
			assert.Equal(t, 22.0, first.MaxTempC)
			assert.Equal(t, 30, first.ChanceOfRain)
			require.NotNil(t, first.Astro)
			assert.Equal(t, "06:41 AM", first.Astro.Sunrise)
			require.Len(t, first.Hours, 1)
			assert.Equal(t, "Asia/Tashkent", first.Hours[0].Time.Location().String())

			assert.Nil(t, data.Days[1].Astro, "missing astro degrades to nil")
		})
	}
}

func TestFetchForecast_NonSuccessStatusIsUnavailable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":1006,"message":"No matching location found."}}`, http.StatusBadRequest)
	})

	_, err := p.FetchForecast(context.Background(), "Nowhere", forecast.KindCurrent)
	assert.ErrorIs(t, err, forecast.ErrProviderUnavailable)
}

func TestFetchForecast_MissingCurrentIsMalformed(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"location": {}}`)
	})

	_, err := p.FetchForecast(context.Background(), "Chilonzor", forecast.KindCurrent)
	assert.ErrorIs(t, err, forecast.ErrProviderMalformed)
}

func TestFetchForecast_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	p.client.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := p.FetchForecast(context.Background(), "Chilonzor", forecast.KindCurrent)
	assert.ErrorIs(t, err, forecast.ErrProviderUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}
