package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/finanzas/internal/auth"
	"github.com/mmynk/finanzas/internal/models"
)

func echoEmail() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetEmail(r.Context())))
	})
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager([]byte("test-secret"), time.Hour)
	token, err := jwtManager.Issue("ana@x.com")
	require.NoError(t, err)

	var reasons []string
	h := RequireAuth(jwtManager, func(reason string) { reasons = append(reasons, reason) })(echoEmail())

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
		wantBody   string
	}{
		{"valid token header", TokenHeader, token, http.StatusOK, "ana@x.com"},
		{"bearer fallback", "Authorization", "Bearer " + token, http.StatusOK, "ana@x.com"},
		{"missing token", "", "", http.StatusUnauthorized, `{"error":"Token no proporcionado"}`},
		{"invalid token", TokenHeader, "not-a-token", http.StatusUnauthorized, `{"error":"Token inválido"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/obtener_info_personal", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}

	assert.Equal(t, []string{"missing_token", "invalid_token"}, reasons)
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager([]byte("test-secret"), time.Hour)
	token, err := jwtManager.Issue("ana@x.com")
	require.NoError(t, err)

	h := OptionalAuth(jwtManager)(echoEmail())

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"valid token", token, "ana@x.com"},
		{"no token", "", models.AnonymousEmail},
		{"invalid token", "garbage", models.AnonymousEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/info_financiera", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, rr.Body.String())
		})
	}
}

func TestLoggingLevels(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusBadRequest, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			out := buf.String()
			assert.True(t, strings.Contains(out, tt.wantLevel), out)
			assert.True(t, strings.Contains(out, "request_id=req-1"), out)
			assert.Equal(t, "req-1", rr.Header().Get(RequestIDHeader))
		})
	}
}

func TestLoggingGeneratesRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS("*")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rr.Header().Get("Access-Control-Allow-Headers"), "x-access-token"))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.True(t, called)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}
