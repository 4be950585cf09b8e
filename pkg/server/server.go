package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/lessonplanner/pkg/config"
	"github.com/limaJavier/lessonplanner/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// Server exposes timetable building over HTTP. Every request builds its own timetable.
type Server struct {
	cfg      *config.Config
	recorder *metrics.Recorder
	logger   *zap.Logger
	engine   *gin.Engine
}

func New(cfg *config.Config, recorder *metrics.Recorder, logger *zap.Logger) *Server {
	if recorder == nil {
		recorder = metrics.NewRecorder(false)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{cfg: cfg, recorder: recorder, logger: logger}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIdMiddleware())
	engine.Use(loggerMiddleware(logger))

	engine.GET("/health", server.health)
	engine.GET("/metrics", gin.WrapH(recorder.Handler()))
	engine.POST("/v1/timetables", server.buildTimetable)

	server.engine = engine
	return server
}

func (server *Server) Handler() http.Handler {
	return server.engine
}

// Run serves until the context is cancelled, then shuts down gracefully
func (server *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    server.cfg.Server.Addr,
		Handler: server.engine,
	}

	errs := make(chan error, 1)
	go func() {
		server.logger.Info("server starting", zap.String("addr", httpServer.Addr), zap.String("env", server.cfg.Env))
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	server.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (server *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
