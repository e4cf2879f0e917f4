// Package siteserver serves the portfolio over plain HTTP: JSON APIs for a
// front end and ready-made résumé exports.
package siteserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/source"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the gin-based portfolio site.
type Server struct {
	router *gin.Engine
	loader *source.Loader
	ex     career.Extractor
	now    func() time.Time
}

// New builds the router. Call gin.SetMode before New to pick the mode.
func New(loader *source.Loader, ex career.Extractor) *Server {
	s := &Server{
		router: gin.New(),
		loader: loader,
		ex:     ex,
		now:    time.Now,
	}
	s.router.Use(requestID(), recovery(), accessLog())
	s.routes()
	return s
}

// Handler exposes the router for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("site: listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("site: shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
