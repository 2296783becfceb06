package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/internal/followup"
	"github.com/healthsync-ai/scheduler/internal/forecast"
	"github.com/healthsync-ai/scheduler/internal/http/handlers"
	"github.com/healthsync-ai/scheduler/internal/observability/metrics"
	"github.com/healthsync-ai/scheduler/internal/scheduling"
	"github.com/healthsync-ai/scheduler/internal/triage"
	"github.com/healthsync-ai/scheduler/internal/waitlist"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := logging.Default()
	registry := prometheus.NewRegistry()

	ledger, err := capacity.NewLedger(capacity.NewStore(client, logger), capacity.DefaultPolicy(), logger)
	if err != nil {
		t.Fatal(err)
	}
	wl := waitlist.NewManager(waitlist.NewStore(client, logger), logger)
	triageSvc := triage.NewService(nil, logger)
	schedSvc := scheduling.NewService(scheduling.Config{
		Ledger:   ledger,
		Waitlist: wl,
		Triage:   triageSvc,
		Store:    scheduling.NewStore(client, logger),
		Metrics:  metrics.NewSchedulerMetrics(registry),
		Logger:   logger,
	})
	monitor := followup.NewMonitor(followup.NewStore(client, logger), logger)

	return New(&Config{
		Logger:          logger,
		Triage:          handlers.NewTriageHandler(triageSvc, logger),
		Bookings:        handlers.NewBookingHandler(schedSvc, logger),
		Availability:    handlers.NewAvailabilityHandler(ledger, 14, logger),
		Waitlist:        handlers.NewWaitlistHandler(wl, logger),
		Forecast:        handlers.NewForecastHandler(forecast.New(ledger, logger), 14, logger),
		FollowUps:       handlers.NewFollowUpHandler(monitor, logger),
		Admin:           handlers.NewAdminHandler(schedSvc, ledger, logger),
		AdminAuthSecret: "test-secret",
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBookingRoute(t *testing.T) {
	r := newTestRouter(t)
	body := `{"patient_name":"Asha Rao","specialty":"Cardiologist","date":"2026-09-01"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRequiresToken(t *testing.T) {
	r := newTestRouter(t)
	body := `{"patient_name":"A","specialty":"Cardiologist","date":"2026-09-01"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/bookings/override", strings.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminAcceptsSignedToken(t *testing.T) {
	r := newTestRouter(t)

	claims := jwt.RegisteredClaims{
		Subject:   "front-desk",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	body := `{"patient_name":"Emergency Transfer","specialty":"Cardiologist","date":"2026-09-01"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/bookings/override", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}
