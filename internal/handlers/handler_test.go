// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests touching the stores are skipped when
// PostgreSQL is unavailable; the catalog cache runs in no-op mode so
// Valkey is never required here.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"slideforge/internal/ai"
	"slideforge/internal/cache"
	"slideforge/internal/database"
	"slideforge/internal/pipeline"
	"slideforge/internal/store"
)

// mockProvider implements ai.Provider with a queue of canned responses.
// Each Generate call pops the next response; the last one repeats.
type mockProvider struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Generate(_ context.Context, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	idx := m.calls
	m.calls++
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

// mockImageProvider adds image generation on top of mockProvider. The
// envelope is returned as-is so tests can exercise shape resolution.
type mockImageProvider struct {
	mockProvider
	envelope  any
	imgErr    error
	imgCalls  int
	imgMu     sync.Mutex
	lastImage ai.ImageRequest
}

func (m *mockImageProvider) GenerateImage(_ context.Context, req ai.ImageRequest) (any, error) {
	m.imgMu.Lock()
	defer m.imgMu.Unlock()
	m.imgCalls++
	m.lastImage = req
	if m.imgErr != nil {
		return nil, m.imgErr
	}
	return m.envelope, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "slideforge")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "slideforge")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Projects  *store.ProjectStore
	Slides    *store.SlideStore
	Templates *store.TemplateStore
	Registry  *ai.Registry
	Provider  *mockImageProvider
	H         *Handler
}

// newTestEnv creates a complete test environment. responses seeds the
// mock provider's text-generation queue.
func newTestEnv(t *testing.T, responses ...string) *testEnv {
	t.Helper()

	db := testDB(t)

	projects := store.NewProjectStore(db)
	slides := store.NewSlideStore(db)
	templates := store.NewTemplateStore(db)
	catalog := cache.NewCatalogCache(nil, time.Minute)

	provider := &mockImageProvider{
		mockProvider: mockProvider{responses: responses},
		envelope:     map[string]any{"output": "https://img.example/generated.png"},
	}
	registry := ai.NewRegistry("mock", map[string]ai.ProviderConfig{})
	registry.Register("mock", provider)

	pipe := pipeline.New(registry, nil, nil)

	h := New(projects, slides, templates, catalog, registry, pipe)
	h.pacing = 0

	return &testEnv{
		DB:        db,
		Projects:  projects,
		Slides:    slides,
		Templates: templates,
		Registry:  registry,
		Provider:  provider,
		H:         h,
	}
}

// jsonRequest builds a request with an optional JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// do invokes a handler method and decodes the JSON response into out
// (skipped when out is nil).
func do(t *testing.T, h http.HandlerFunc, r *http.Request, wantStatus int, out any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h(rec, r)
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, wantStatus, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
		}
	}
}

// cleanProjects removes test projects by input URL.
func cleanProjects(t *testing.T, db *sql.DB, urls ...string) {
	t.Helper()
	for _, u := range urls {
		db.Exec("DELETE FROM projects WHERE input_url = $1", u)
	}
}

// cleanTemplates removes test templates by name.
func cleanTemplates(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM prompt_templates WHERE name = $1", n)
	}
}
