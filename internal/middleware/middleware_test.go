package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/lrms/internal/app/auth"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/auth"
	"github.com/yigit/lrms/internal/pkg/metrics"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWT(secret string) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      secret,
		AccessTokenExp: time.Hour,
		TokenIssuer:    "lrms",
	})
}

func tokenFor(t *testing.T, svc *auth.JWTService, id models.Identity) string {
	t.Helper()
	token, _, err := svc.Issue(auth.ClaimsFor(id))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func newRouter(jwtService *auth.JWTService) *gin.Engine {
	am := NewAuthMiddleware(jwtService, appauth.DefaultPolicy("/api"), metrics.New())
	r := gin.New()
	api := r.Group("/api", am.Authenticate(), am.Authorize())
	ok := func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "id": id.UserID})
	}
	api.GET("/reports", ok)
	api.POST("/reports", ok)
	api.PUT("/reports/:id/feedback", ok)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	jwtService := testJWT("secret")
	r := newRouter(jwtService)

	lecturer := tokenFor(t, jwtService, models.Identity{UserID: 11, Role: models.RoleLecturer, Name: "A"})
	prl := tokenFor(t, jwtService, models.Identity{UserID: 21, Role: models.RolePRL, Name: "P"})
	forged := tokenFor(t, testJWT("other-secret"), models.Identity{UserID: 1, Role: models.RolePL, Name: "X"})

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
		code   dto.ErrorCode
	}{
		{"no header", http.MethodGet, "/api/reports", "", http.StatusUnauthorized, dto.ErrorCodeMissingToken},
		{"basic scheme", http.MethodGet, "/api/reports", "Basic abc", http.StatusUnauthorized, dto.ErrorCodeMalformedHeader},
		{"bare token", http.MethodGet, "/api/reports", lecturer, http.StatusUnauthorized, dto.ErrorCodeMalformedHeader},
		{"wrong key", http.MethodGet, "/api/reports", "Bearer " + forged, http.StatusForbidden, dto.ErrorCodeInvalidToken},
		{"garbage", http.MethodGet, "/api/reports", "Bearer a.b.c", http.StatusForbidden, dto.ErrorCodeInvalidToken},
		{"any role list", http.MethodGet, "/api/reports", "Bearer " + prl, http.StatusOK, ""},
		{"lecturer creates", http.MethodPost, "/api/reports", "Bearer " + lecturer, http.StatusOK, ""},
		{"prl cannot create", http.MethodPost, "/api/reports", "Bearer " + prl, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"lecturer cannot review", http.MethodPut, "/api/reports/1/feedback", "Bearer " + lecturer, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"prl reviews", http.MethodPut, "/api/reports/1/feedback", "Bearer " + prl, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.code != "" {
				resp := decodeError(t, w)
				if resp.Success || resp.Error == nil || resp.Error.Code != tt.code {
					t.Fatalf("body = %s, want code %s", w.Body.String(), tt.code)
				}
			}
		})
	}
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.ErrTokenExpired, http.StatusForbidden, "Token expired"},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{apperrors.NewConflictError("course code already exists"), http.StatusConflict, "course code already exists"},
		{apperrors.NewResourceNotFoundError("report not found"), http.StatusNotFound, "report not found"},
		{fmt.Errorf("%w: week out of range", apperrors.ErrValidationFailed), http.StatusBadRequest, "validation failed: week out of range"},
		{apperrors.NewForbiddenError("module is not assigned to you"), http.StatusForbidden, "module is not assigned to you"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tt.err)

		if w.Code != tt.status {
			t.Fatalf("%v: status = %d, want %d", tt.err, w.Code, tt.status)
		}
		if resp := decodeError(t, w); resp.Message != tt.message {
			t.Fatalf("%v: message = %q, want %q", tt.err, resp.Message, tt.message)
		}
	}
}

type bindTarget struct {
	PRLFeedback string `json:"prl_feedback" binding:"required"`
	Rating      int    `json:"rating" binding:"gte=1,lte=5"`
}

func TestBindJSONReportsJSONFieldNames(t *testing.T) {
	RegisterJSONTagNames()

	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		var body bindTarget
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"rating": 9}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "prl_feedback is required") || !strings.Contains(body, "rating must be less than or equal to 5") {
		t.Fatalf("body = %s", body)
	}
}

func TestParseIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/reports/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{"/reports/4": 200, "/reports/abc": 400, "/reports/0": 400} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("%s: status = %d, want %d", path, w.Code, want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := gin.New()
	r.POST("/login", RateLimiter(ctx, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("second client status = %d", w.Code)
	}
}

func TestVisitorSweep(t *testing.T) {
	store := newVisitorStore(time.Minute)
	store.get("10.0.0.1", rate.Every(time.Second), 1)
	store.get("10.0.0.2", rate.Every(time.Second), 1)
	store.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Minute)

	store.sweep(time.Now())
	if store.size() != 1 {
		t.Fatalf("visitors after sweep = %d, want 1", store.size())
	}
	if _, ok := store.visitors["10.0.0.2"]; !ok {
		t.Fatal("active visitor was dropped")
	}
}

func TestVisitorSweepStopsOnCancel(t *testing.T) {
	store := newVisitorStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep goroutine did not exit after cancel")
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}), SecureHeaders())
	r.GET("/api/reports", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("preflight = %d %v", w.Code, w.Header())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unlisted origin allowed")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("secure headers missing")
	}
}
