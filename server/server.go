package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/adrianliechti/emailbison-mcp/config"
	"github.com/adrianliechti/emailbison-mcp/server/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	*config.Config

	http.Handler
}

func New(ctx context.Context, cfg *config.Config, version string) (*Server, error) {
	s, err := cfg.Server(version)

	if err != nil {
		return nil, err
	}

	h, err := mcp.New(ctx, s)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: sameHost,
		AllowedMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:  []string{"*"},
		ExposedHeaders:  []string{"Mcp-Session-Id"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	h.Attach(r)

	return &Server{
		Config:  cfg,
		Handler: r,
	}, nil
}

// ListenAndServe serves until ctx is done and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	logger := s.Logger

	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("server listening", "addr", addr, "path", "/mcp")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// sameHost only admits browser origins served from the listen host itself.
func sameHost(r *http.Request, origin string) bool {
	u, err := url.Parse(origin)

	if err != nil {
		return false
	}

	return u.Host != "" && u.Host == r.Host
}
