//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"chai-app-go/internal/app"
	"chai-app-go/internal/config"
	"chai-app-go/internal/db"
	"chai-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testEnv struct {
	server *httptest.Server
	app    *app.App
}

func postgresDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("E2E_DB_DSN"); dsn != "" {
		return dsn
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chai"),
		postgres.WithUsername("chai"),
		postgres.WithPassword("chai"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		HTTPPort:        "0",
		CatalogCacheTTL: time.Second,
		RateLimit:       config.RateLimitConfig{Requests: 1000, Window: time.Minute},
		DB:              config.DBConfig{Driver: config.DriverPostgres, DSN: postgresDSN(t)},
		Media:           config.MediaConfig{Backend: config.MediaBackendLocal, Root: t.TempDir(), URL: "/media/"},
	}

	application, err := app.New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.Migrate(application.DB()))
	require.NoError(t, application.DB().Exec(
		"TRUNCATE TABLE store_chai_varieties, chai_certificates, chai_reviews, stores, chai_varieties, users RESTART IDENTITY CASCADE",
	).Error)

	server := httptest.NewServer(application.HTTPServer().Handler)
	t.Cleanup(func() {
		server.Close()
		_ = application.Close()
	})

	return &testEnv{server: server, app: application}
}

func (e *testEnv) request(t *testing.T, method, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

type idResponse struct {
	ID uint `json:"id"`
}

func (e *testEnv) create(t *testing.T, path string, payload interface{}) uint {
	t.Helper()
	resp, raw := e.request(t, http.MethodPost, path, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var out idResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.ID
}

func TestE2ESitePages(t *testing.T) {
	env := setupE2E(t)

	chaiID := env.create(t, "/api/varieties", map[string]interface{}{"name": "Kiwi Cooler", "type": "KL", "price": 55})

	for _, path := range []string{"/", "/about/", "/contact/", "/chai/", "/chai/chai_store/", fmt.Sprintf("/chai/%d/", chaiID)} {
		resp, raw := env.request(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"), path)
		assert.Contains(t, string(raw), "data-template=", path)
	}

	resp, _ := env.request(t, http.MethodGet, fmt.Sprintf("/chai/%d/", chaiID+1000), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestE2EDeleteVarietyCascades(t *testing.T) {
	env := setupE2E(t)

	userID := env.create(t, "/api/users", map[string]string{"username": "meera"})
	chaiID := env.create(t, "/api/varieties", map[string]interface{}{"name": "Masala", "type": "ML"})
	env.create(t, fmt.Sprintf("/api/varieties/%d/reviews", chaiID), map[string]interface{}{"user_id": userID, "rating": 5, "comment": "yes"})
	resp, raw := env.request(t, http.MethodPut, fmt.Sprintf("/api/varieties/%d/certificate", chaiID), map[string]string{"valid_until": "2027-01-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	storeID := env.create(t, "/api/stores", map[string]interface{}{"name": "Tapri", "location": "Jaipur", "variety_ids": []uint{chaiID}})

	resp, _ = env.request(t, http.MethodDelete, fmt.Sprintf("/api/varieties/%d", chaiID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, env.app.DB().Raw("SELECT COUNT(*) FROM chai_reviews WHERE chai_id = ?", chaiID).Scan(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.app.DB().Raw("SELECT COUNT(*) FROM chai_certificates WHERE chai_id = ?", chaiID).Scan(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.app.DB().Raw("SELECT COUNT(*) FROM store_chai_varieties WHERE store_id = ?", storeID).Scan(&count).Error)
	assert.Zero(t, count)
}

func TestE2EOneCertificatePerVariety(t *testing.T) {
	env := setupE2E(t)

	chaiID := env.create(t, "/api/varieties", map[string]interface{}{"name": "Plain", "type": "PL"})
	path := fmt.Sprintf("/api/varieties/%d/certificate", chaiID)

	const attempts = 5
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, _ := json.Marshal(map[string]string{"valid_until": "2027-01-01"})
			req, err := http.NewRequest(http.MethodPut, env.server.URL+path, bytes.NewReader(data))
			if err != nil {
				return
			}
			resp, err := env.server.Client().Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, env.app.DB().Raw("SELECT COUNT(*) FROM chai_certificates WHERE chai_id = ?", chaiID).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestE2ETypeCheckConstraint(t *testing.T) {
	env := setupE2E(t)

	err := env.app.DB().Exec(
		"INSERT INTO chai_varieties (name, image, price, date_added, type, description) VALUES ('Bad', '', 0, NOW(), 'XX', '')",
	).Error
	require.Error(t, err)
}
