package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saymealien/bloodpressurebot/internal/config"
	"github.com/saymealien/bloodpressurebot/internal/metrics"
)

func TestHTTPHandler_HealthAndMetrics(t *testing.T) {
	m := metrics.New("bptest")
	m.ObserveReminder("sent")
	h := newHTTPHandler(m, config.DriverMemory)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"store":"memory"`) {
		t.Fatalf("healthz body = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bptest_") {
		t.Fatalf("metrics missing namespace: %s", rec.Body.String())
	}
}

func TestOpenRepo_Drivers(t *testing.T) {
	ctx := context.Background()

	for _, cfg := range []config.Config{
		{StoreDriver: config.DriverMemory},
		{StoreDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "diary.db")},
	} {
		repo, err := openRepo(ctx, cfg)
		if err != nil {
			t.Fatalf("open %s: %v", cfg.StoreDriver, err)
		}
		if _, err := repo.GetSettings(ctx, 1); err != nil {
			t.Fatalf("%s get settings: %v", cfg.StoreDriver, err)
		}
		_ = repo.Close()
	}

	if _, err := openRepo(ctx, config.Config{StoreDriver: "mysql"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
