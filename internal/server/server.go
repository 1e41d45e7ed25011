// Package server exposes a store over a small JSON API with a websocket
// change feed, the HTTP counterpart of the widget's re-render subscription.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickies/pkg/core"
)

// Server serves one store.
type Server struct {
	store  *core.Store
	logger *slog.Logger
	engine *gin.Engine
	hub    *hub

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Server for store. A nil logger discards logs.
func New(store *core.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		store:  store,
		logger: logger,
		engine: gin.New(),
		hub:    newHub(),
		ctx:    ctx,
		cancel: cancel,
	}
	s.engine.Use(gin.Recovery(), requestLogger(logger))
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/notes", s.listNotes)
	api.POST("/notes", s.createNote)
	api.GET("/notes/:id", s.getNote)
	api.PUT("/notes/:id", s.updateNote)
	api.DELETE("/notes/:id", s.deleteNote)
	api.GET("/state", s.state)
	api.GET("/events", s.events)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close disconnects every event client.
func (s *Server) Close() {
	s.cancel()
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving notes", "addr", addr, "key", s.store.Key())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		// Hijacked websocket connections are not tracked by Shutdown.
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
