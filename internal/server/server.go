package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/ubl-reader/internal/logger"
	"github.com/rezonia/ubl-reader/internal/processor"
	"github.com/rezonia/ubl-reader/internal/validation"
)

// DefaultMaxUploadBytes bounds request bodies when Config leaves it unset
const DefaultMaxUploadBytes = 32 << 20

// Config holds server configuration
type Config struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
	MaxMemberBytes int64
	LenientNumbers bool
	Debug          bool
	Logger         *logger.Logger
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	pipeline  *processor.Pipeline
	validator *validation.Validator
	log       *logger.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}

	log := config.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.SetHTMLTemplate(template.Must(template.New(summaryTemplateName).Parse(summaryTemplate)))

	var opts []processor.Option
	if config.LenientNumbers {
		opts = append(opts, processor.WithLenientNumbers())
	}
	if config.MaxMemberBytes > 0 {
		opts = append(opts, processor.WithMaxMemberSize(config.MaxMemberBytes))
	}

	s := &Server{
		config:    config,
		router:    router,
		pipeline:  processor.NewPipeline(opts...),
		validator: &validation.Validator{},
		log:       log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoice", s.handleInvoice)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/info", s.handleInfo)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs one line per request; parse failures carry their code
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		}

		ev = ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start))
		if code := c.GetString(errorCodeKey); code != "" {
			ev = ev.Str("error_code", code)
		}
		ev.Msg("request")
	}
}
