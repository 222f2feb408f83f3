//go:build integration

package router_test

// End-to-end tests against real Postgres and Redis started with testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/abhishek972986/porter-managment/internal/config"
	"github.com/abhishek972986/porter-managment/internal/infra"
	"github.com/abhishek972986/porter-managment/internal/repository"
	"github.com/abhishek972986/porter-managment/internal/router"
	"github.com/abhishek972986/porter-managment/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, token string) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func data[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type pdfStub struct{}

func (pdfStub) RenderPDF(context.Context, string) ([]byte, error) { return []byte("%PDF-1.4 stub"), nil }

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin access token
}

func register(t *testing.T, srv *httptest.Server, email, role string) string {
	t.Helper()
	resp, env := do(t, srv, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "E2E " + role, "email": email, "password": "secret123", "role": role,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	auth := data[struct {
		AccessToken string `json:"accessToken"`
	}](t, env)
	require.NotEmpty(t, auth.AccessToken)
	return auth.AccessToken
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("porter_test"),
		tcPostgres.WithUsername("porter"),
		tcPostgres.WithPassword("porter"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	tmpl := filepath.Join(t.TempDir(), "works.template.html")
	require.NoError(t, os.WriteFile(tmpl, []byte("<p>{{unitName}} {{date}}</p>"), 0o600))

	cfg := &config.Config{
		Env:                  "test",
		WorkerPoolSize:       1,
		DatabaseURL:          pgURL,
		RedisURL:             rdURL,
		JWTAccessSecret:      "e2e-access",
		JWTRefreshSecret:     "e2e-refresh",
		JWTAccessMinutes:     15,
		JWTRefreshHours:      24,
		LoginRateLimit:       100,
		DocumentTemplatePath: tmpl,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	workerCtx, cancel := context.WithCancel(ctx)
	pool := worker.StartWorkerPool(workerCtx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		worker.QueueActivity: worker.NewActivityWorker(repository.NewActivityRepository(db)).Process,
	})
	t.Cleanup(func() {
		cancel()
		pool.Wait()
	})

	r := router.New(cfg, db, rdb, pdfStub{}, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, token: register(t, srv, "admin@e2e.test", "Admin")}
}

func (e *testEnv) create(t *testing.T, path string, body any) string {
	t.Helper()
	resp, env := do(t, e.server, http.MethodPost, path, body, e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	return data[struct {
		ID string `json:"id"`
	}](t, env).ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_AttendanceToPayroll(t *testing.T) {
	env := setupTestEnv(t)

	porter := env.create(t, "/api/porters", map[string]string{"uid": "P001", "name": "Arjun"})
	from := env.create(t, "/api/locations", map[string]string{"code": "wh01", "name": "Main Warehouse"})
	to := env.create(t, "/api/locations", map[string]string{"code": "WH02", "name": "North Depot"})
	carrier := env.create(t, "/api/carriers", map[string]any{"name": "porter", "capacityKg": 20})
	env.create(t, "/api/commute-costs", map[string]any{
		"fromLocationId": from, "toLocationId": to, "carrierId": carrier, "cost": 25,
	})

	// Duplicate price for the same triple is a conflict.
	resp, _ := do(t, env.server, http.MethodPost, "/api/commute-costs", map[string]any{
		"fromLocationId": from, "toLocationId": to, "carrierId": carrier, "cost": 30,
	}, env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	for _, day := range []string{"2024-03-01", "2024-03-31T23:30:00+05:30"} {
		env.create(t, "/api/attendance", map[string]string{
			"date": day, "porterId": porter, "carrierId": carrier,
			"locationFromId": from, "locationToId": to, "task": "Load transfer",
		})
	}

	// Unpriced reverse route is rejected and nothing is stored.
	resp, _ = do(t, env.server, http.MethodPost, "/api/attendance", map[string]string{
		"date": "2024-03-02", "porterId": porter, "carrierId": carrier,
		"locationFromId": to, "locationToId": from,
	}, env.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, env.server, http.MethodGet, "/api/payroll?month=2024-03", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	payroll := data[struct {
		Summary struct {
			TotalPorters int             `json:"totalPorters"`
			TotalPayroll decimal.Decimal `json:"totalPayroll"`
			TotalTrips   int             `json:"totalTrips"`
		} `json:"summary"`
	}](t, body)
	assert.Equal(t, 1, payroll.Summary.TotalPorters)
	assert.Equal(t, 2, payroll.Summary.TotalTrips)
	assert.True(t, decimal.NewFromInt(50).Equal(payroll.Summary.TotalPayroll))

	// Concurrent increments never lose updates.
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _ := do(t, env.server, http.MethodPatch, "/api/payroll/"+porter+"/payment",
				map[string]any{"month": "2024-03", "increment": 10}, env.token)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}()
	}
	wg.Wait()

	resp, body = do(t, env.server, http.MethodGet, "/api/payroll/"+porter+"?month=2024-03", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := data[struct {
		Payment struct {
			IsPaid bool            `json:"isPaid"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"payment"`
	}](t, body)
	assert.True(t, view.Payment.IsPaid)
	assert.True(t, decimal.NewFromInt(50).Equal(view.Payment.Amount))

	resp, _ = do(t, env.server, http.MethodGet, "/api/reports/porter-nominal-roll?month=2024-03", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Nominal_Roll_2024-03.xlsx"`, resp.Header.Get("Content-Disposition"))

	// Activities are written by the worker pool.
	assert.Eventually(t, func() bool {
		_, body := do(t, env.server, http.MethodGet, "/api/activities?limit=50", nil, env.token)
		feed := data[struct {
			Activities []json.RawMessage `json:"activities"`
		}](t, body)
		return len(feed.Activities) >= 10
	}, 10*time.Second, 200*time.Millisecond)
}

func TestE2E_RolesAndTokens(t *testing.T) {
	env := setupTestEnv(t)
	porter := env.create(t, "/api/porters", map[string]string{"uid": "P009", "name": "Bhola"})
	viewer := register(t, env.server, "viewer@e2e.test", "Viewer")

	resp, _ := do(t, env.server, http.MethodGet, "/api/porters", nil, viewer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, env.server, http.MethodDelete, "/api/porters/"+porter, nil, viewer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = do(t, env.server, http.MethodGet, "/api/porters", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := do(t, env.server, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "viewer@e2e.test", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tokens := data[struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}](t, body)

	resp, _ = do(t, env.server, http.MethodPost, "/api/auth/logout",
		map[string]string{"refreshToken": tokens.RefreshToken}, tokens.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, env.server, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refreshToken": tokens.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, env.server, http.MethodPost, "/api/documents/generate-pdf", map[string]string{
		"brigade": "12", "unitName": "<b>Alpha</b>", "financialYear": "2024-25",
		"brigadeName": "Bde", "letterNo": "L/1", "date": "2024-03-05",
	}, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}
