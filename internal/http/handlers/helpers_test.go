package handlers

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/internal/followup"
	"github.com/healthsync-ai/scheduler/internal/forecast"
	"github.com/healthsync-ai/scheduler/internal/observability/metrics"
	"github.com/healthsync-ai/scheduler/internal/scheduling"
	"github.com/healthsync-ai/scheduler/internal/triage"
	"github.com/healthsync-ai/scheduler/internal/waitlist"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// testEnv bundles fully wired domain services over miniredis.
type testEnv struct {
	ledger     *capacity.Ledger
	waitlist   *waitlist.Manager
	triage     *triage.Service
	scheduling *scheduling.Service
	forecaster *forecast.Forecaster
	followups  *followup.Monitor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := logging.Default()

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
		Metrics:  metrics.NewSchedulerMetrics(prometheus.NewRegistry()),
		Logger:   logger,
	})

	return &testEnv{
		ledger:     ledger,
		waitlist:   wl,
		triage:     triageSvc,
		scheduling: schedSvc,
		forecaster: forecast.New(ledger, logger),
		followups:  followup.NewMonitor(followup.NewStore(client, logger), logger),
	}
}
