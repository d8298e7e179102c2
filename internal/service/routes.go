package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/finanzas/internal/auth"
	"github.com/mmynk/finanzas/internal/metrics"
	"github.com/mmynk/finanzas/internal/middleware"
	"github.com/mmynk/finanzas/internal/storage"
)

// readyTimeout bounds the store check behind /readyz.
const readyTimeout = 2 * time.Second

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager
	Metrics       *metrics.Metrics // optional
	Logger        *slog.Logger
	CORSOrigin    string
}

// NewHandler builds the full HTTP API: routes, auth, logging and CORS.
func NewHandler(d Deps) http.Handler {
	if d.CORSOrigin == "" {
		d.CORSOrigin = "*"
	}

	authSvc := NewAuthService(d.Authenticator, d.JWTManager, d.Metrics, d.Logger)
	financeSvc := NewFinanceService(d.Store, d.Metrics, d.Logger)

	required := middleware.RequireAuth(d.JWTManager, d.Metrics.AuthFailure)
	optional := middleware.OptionalAuth(d.JWTManager)

	mux := http.NewServeMux()
	handle := func(method, path string, h http.Handler) {
		mux.Handle(method+" "+path, d.Metrics.Instrument(path, h))
	}

	handle(http.MethodPost, "/registro", http.HandlerFunc(authSvc.Register))
	handle(http.MethodPost, "/login", http.HandlerFunc(authSvc.Login))

	handle(http.MethodPost, "/info_personal", required(http.HandlerFunc(financeSvc.SavePersonalInfo)))
	handle(http.MethodGet, "/obtener_info_personal", required(http.HandlerFunc(financeSvc.ListPersonalInfo)))
	handle(http.MethodGet, "/todas_personas", http.HandlerFunc(financeSvc.ListAllPersonalInfo))

	handle(http.MethodPost, "/info_financiera", optional(http.HandlerFunc(financeSvc.SaveFinancialInfo)))
	handle(http.MethodGet, "/obtener_info_financiera", optional(http.HandlerFunc(financeSvc.GetFinancialInfo)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("Readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		_, _ = w.Write([]byte("ready"))
	})
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	return middleware.Chain(mux, middleware.Logging(d.Logger), middleware.CORS(d.CORSOrigin))
}
