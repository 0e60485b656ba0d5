package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/lukman83/wb-scrap/internal/metrics"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Router serves /healthz, /metrics and the MCP endpoint at /mcp. A
// non-empty apiKey puts /mcp behind bearer auth.
func Router(apiKey string, d Deps) http.Handler {
	log := logger.OrNop(d.Log)
	mcpHandler := http.Handler(server.NewStreamableHTTPServer(NewServer(d), server.WithStateLess(true)))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Group(func(r chi.Router) {
		if apiKey != "" {
			r.Use(bearerAuth(apiKey))
		}
		r.Handle("/mcp", mcpHandler)
	})
	return r
}

// ServeHTTP listens on addr until ctx is cancelled, then drains in-flight
// requests.
func ServeHTTP(ctx context.Context, addr, apiKey string, d Deps) error {
	log := logger.OrNop(d.Log)
	srv := &http.Server{
		Addr:         addr,
		Handler:      Router(apiKey, d),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // download_images can run long
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mcp http server listening", zap.String("addr", addr), zap.Bool("auth", apiKey != ""))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("mcp http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func bearerAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="mcp"`)
				http.Error(w, `{"error":"missing Authorization header"}`, http.StatusUnauthorized)
				return
			}
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="mcp", error="invalid_token"`)
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
