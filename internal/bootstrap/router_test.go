package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/lrms/internal/app/auth"
	"github.com/yigit/lrms/internal/app/models"
	appRepos "github.com/yigit/lrms/internal/app/repositories"
	appRoutes "github.com/yigit/lrms/internal/app/routes"
	appServices "github.com/yigit/lrms/internal/app/services"
	"github.com/yigit/lrms/internal/config"
	pkgAuth "github.com/yigit/lrms/internal/pkg/auth"
	"github.com/yigit/lrms/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.CORSAllowedOrigins = "http://localhost:3000"
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.RefreshGracePeriod = "15m"
	cfg.JWT.Issuer = "lrms"
	cfg.RateLimit.AuthRequests = 100
	cfg.RateLimit.AuthWindow = "1m"
	return cfg
}

// testDependencies wires the real graph over repositories without a pool.
// Requests that reach a repository are not expected in these tests.
func testDependencies(cfg *config.Config, health Pinger) *Dependencies {
	deps := &Dependencies{Logger: zerolog.Nop(), Health: health}
	deps.Repos = appRepos.NewRepositories(nil)
	deps.JWTService = NewJWTService(cfg)
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, zerolog.Nop())
	deps.Metrics = metrics.New()
	wireControllers(deps)
	return deps
}

// testContext is cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

func bearer(t *testing.T, jwt *pkgAuth.JWTService, id models.Identity) string {
	t.Helper()
	token, _, err := jwt.Issue(pkgAuth.ClaimsFor(id))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return "Bearer " + token
}

func TestEveryPolicyEntryIsRouted(t *testing.T) {
	cfg := testConfig()
	router := SetupRouter(testContext(t), cfg, testDependencies(cfg, nil), zerolog.Nop())

	routed := map[string]bool{}
	for _, r := range router.Routes() {
		routed[appAuth.Key(r.Method, r.Path)] = true
	}

	for key := range appAuth.DefaultPolicy(appRoutes.APIBase) {
		if !routed[key] {
			t.Errorf("policy entry %q has no route", key)
		}
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		health Pinger
		want   int
	}{
		{"no database", nil, http.StatusOK},
		{"database up", stubPinger{}, http.StatusOK},
		{"database down", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			router := SetupRouter(testContext(t), cfg, testDependencies(cfg, tt.health), zerolog.Nop())

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestProtectedRoutesRejectBeforeHandlers(t *testing.T) {
	cfg := testConfig()
	deps := testDependencies(cfg, nil)
	router := SetupRouter(testContext(t), cfg, deps, zerolog.Nop())

	student := models.Identity{UserID: 5, Role: models.RoleStudent, Name: "S100"}
	lecturer := models.Identity{UserID: 11, Role: models.RoleLecturer, Name: "Lecturer A"}

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"no token", http.MethodGet, "/api/reports", "", http.StatusUnauthorized},
		{"malformed header", http.MethodGet, "/api/me", "Token abc", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/me", "Bearer abc.def.ghi", http.StatusForbidden},
		{"student creates course", http.MethodPost, "/api/courses", bearer(t, deps.JWTService, student), http.StatusForbidden},
		{"lecturer writes feedback", http.MethodPut, "/api/reports/1/feedback", bearer(t, deps.JWTService, lecturer), http.StatusForbidden},
		{"lecturer exports reports", http.MethodGet, "/api/reports/export", bearer(t, deps.JWTService, lecturer), http.StatusForbidden},
		{"student reads program dashboard", http.MethodGet, "/api/monitoring/program", bearer(t, deps.JWTService, student), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"lrms_auth_failures_total", "http_requests_total"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestSecureHeadersAreApplied(t *testing.T) {
	cfg := testConfig()
	router := SetupRouter(testContext(t), cfg, testDependencies(cfg, nil), zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
}
