package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/epoint/springlab/metrics"
	"github.com/epoint/springlab/net/resp"
	"github.com/gin-gonic/gin"
)

// ErrAlreadyStarted is returned when Start is called on a running server.
var ErrAlreadyStarted = errors.New("server already started")

// Server is the embedded HTTP server
type Server struct {
	conf    *config.Config
	c       *container.Container
	metrics *metrics.Metrics
	engine  *gin.Engine

	ready atomic.Bool

	mu      sync.Mutex
	srv     *http.Server
	ln      net.Listener
	done    chan struct{}
	stopped bool
}

// New creates the server and its router
func New(conf *config.Config, c *container.Container, m *metrics.Metrics) *Server {
	s := &Server{
		conf:    conf,
		c:       c,
		metrics: m,
	}
	s.engine = s.setupRouter()
	return s
}

// setupRouter builds the gin engine with middleware and management routes
func (s *Server) setupRouter() *gin.Engine {
	switch s.conf.RunMode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(s.conf.RunMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(recoveryMiddleware())
	r.Use(traceMiddleware())
	r.Use(loggerMiddleware())
	if s.metrics != nil {
		r.Use(metricsMiddleware(s.metrics))
	}

	if mc := s.conf.Management; mc != nil && mc.Enabled {
		s.registerManagementRoutes(r.Group(mc.BasePath))
	}

	r.NoRoute(func(ctx *gin.Context) {
		resp.Fail(ctx.Writer, resp.NotFound(fmt.Sprintf("no route for %s %s", ctx.Request.Method, ctx.Request.URL.Path)))
	})

	return r
}

// Engine returns the gin engine for component route registration and tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterComponentRoutes mounts the routes of every registered component
func (s *Server) RegisterComponentRoutes() {
	s.c.RegisterRoutes(s.engine.Group(""))
}

// Start binds the configured address and serves in the background. Bind
// errors are returned synchronously.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.srv != nil || s.stopped {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}

	sc := s.conf.Server
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.conf.Address())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.conf.Address(), err)
	}

	s.ln = ln
	s.srv = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}
	s.done = make(chan struct{})

	go func(srv *http.Server, done chan struct{}) {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(context.Background(), "server stopped unexpectedly: %v", err)
		}
	}(s.srv, s.done)
	s.mu.Unlock()

	// subscribers run synchronously and may call back into the server
	addr := ln.Addr().String()
	logger.Infof(ctx, "server listening on %s", addr)
	s.c.Publish(types.EventServerStarted, addr)
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// SetReady toggles the readiness probe
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady reports the readiness probe state
func (s *Server) IsReady() bool {
	return s.ready.Load()
}

// Stop gracefully shuts the server down. Calling Stop more than once, or
// before Start, is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped || s.srv == nil {
		s.stopped = true
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	srv, done := s.srv, s.done
	s.mu.Unlock()

	s.SetReady(false)

	if err := srv.Shutdown(ctx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-done

	logger.Infof(ctx, "server stopped")
	return nil
}
