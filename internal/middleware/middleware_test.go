package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/ratelimit"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/applyhub/applyhub/internal/utils"
	"github.com/gin-gonic/gin"
)

type stubAuthenticator struct {
	token string
}

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	if token != s.token {
		return nil, errors.New("bad token")
	}
	return &models.Admin{Name: "Root", Email: "root@example.org"}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	r.GET("/", func(ctx *gin.Context) {
		if admin, err := utils.GetCurrentAdmin(ctx); err == nil {
			ctx.String(http.StatusOK, admin.Name)
			return
		}
		ctx.String(http.StatusOK, "ok")
	})
	r.POST("/", func(ctx *gin.Context) {
		if _, err := io.ReadAll(ctx.Request.Body); err != nil {
			ctx.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		ctx.String(http.StatusOK, "ok")
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	r := newEngine(AdminAuth(stubAuthenticator{token: "good"}))

	cases := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"missing", func(req *http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: types.SessionCookieName, Value: "good"})
		}, http.StatusOK},
		{"bad token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"bad scheme", func(req *http.Request) { req.Header.Set("Authorization", "Basic good") }, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.status == http.StatusOK && rec.Body.String() != "Root" {
				t.Fatalf("expected admin in context, got %q", rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(ratelimit.NewMemoryLimiter(1, time.Minute), quietLogger()))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, rec.Code)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	r := newEngine(BodyLimit(8))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too long"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := newEngine(RequestLogger(logger))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), `"status":200`) || !strings.Contains(buf.String(), `"method":"GET"`) {
		t.Fatalf("unexpected log line %q", buf.String())
	}
}
