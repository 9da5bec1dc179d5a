// Package server exposes the chatbot over an HTTP chat API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brook-ai/brook/agents"
	"github.com/brook-ai/brook/components"
)

// Bot is the conversational surface the server fronts.
type Bot interface {
	NewSession(passengerID string) (*agents.Session, error)
	Session(id string) (*agents.Session, error)
	DeleteSession(id string)
	Handle(ctx context.Context, sessionID, message string) (*agents.Reply, error)
	Approve(ctx context.Context, sessionID string) (*agents.Reply, error)
	Deny(ctx context.Context, sessionID, reason string) (*agents.Reply, error)
	History(sessionID string) ([]components.Message, error)
}

type Options struct {
	addr         string
	allowOrigins []string
}

type Option func(*Options)

func WithAddr(addr string) Option {
	return func(o *Options) {
		o.addr = addr
	}
}

func WithAllowOrigins(origins []string) Option {
	return func(o *Options) {
		o.allowOrigins = origins
	}
}

type Server struct {
	Options
	bot    Bot
	engine *gin.Engine
}

func New(bot Bot, opts ...Option) *Server {
	ret := &Server{bot: bot}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.addr == "" {
		ret.addr = ":8080"
	}
	ret.engine = ret.buildEngine()
	return ret
}

func (s *Server) buildEngine() *gin.Engine {
	r := gin.New()
	corsCfg := cors.DefaultConfig()
	if len(s.allowOrigins) > 0 {
		corsCfg.AllowOrigins = s.allowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(RequestID(), Logger(), gin.Recovery(), cors.New(corsCfg))

	r.GET("/healthz", s.health)
	api := r.Group("/api")
	{
		sessions := api.Group("/sessions")
		sessions.POST("", s.createSession)
		sessions.POST("/:id/messages", s.postMessage)
		sessions.POST("/:id/approve", s.resolveApproval)
		sessions.GET("/:id/history", s.history)
		sessions.DELETE("/:id", s.deleteSession)
	}
	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until the context is cancelled, then drains in-flight
// requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
