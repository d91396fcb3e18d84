package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"weather_notification_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	ok := New(":0", stubPinger{}, nil, testLogger())
	rec := get(t, ok.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := New(":0", stubPinger{err: errors.New("connection refused")}, nil, testLogger())
	rec = get(t, down.Handler(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	recorder := metrics.New()
	recorder.Delivery("ok")

	s := New(":0", stubPinger{}, recorder.Handler(), testLogger())
	rec := get(t, s.Handler(), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `weatherbot_scheduled_deliveries_total{outcome="ok"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	s := New(":0", stubPinger{}, nil, testLogger())
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/metrics").Code)
}
