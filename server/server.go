// Package server implements the interactive dashboard: a gin HTTP
// server holding the order book in memory, a JSON API for the embedded
// page, CSV upload and spreadsheet export. Each browser session owns
// its dataset and filter.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/shopsight"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	cfg      Config
	log      *logrus.Logger
	sessions *sessionStore
	engine   *gin.Engine
}

// New builds a dashboard server around the base dataset.
func New(cfg Config, base *shopsight.Dataset) *Server {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		log:      log,
		sessions: newSessionStore(base),
		engine:   engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	corsConfig := cors.DefaultConfig()
	if s.cfg.AllowedOrigins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = splitAndTrim(s.cfg.AllowedOrigins)
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type")
	s.engine.Use(cors.New(corsConfig))
	s.engine.Use(s.accessLog())

	s.engine.GET("/", s.handlePage)
	s.engine.GET("/report", s.handleReport)

	api := s.engine.Group("/api")
	api.GET("/summary", s.handleSummary)
	api.GET("/daily", s.handleDaily)
	api.GET("/products", s.handleProducts)
	api.GET("/categories", s.handleCategories)
	api.GET("/customers", s.handleCustomers)
	api.GET("/payments", s.handlePayments)
	api.GET("/fraud", s.handleFraud)
	api.GET("/orders", s.handleOrders)
	api.GET("/export", s.handleExport)
	api.POST("/upload", s.handleUpload)
	api.POST("/filters", s.handleFilters)
}

// accessLog emits one structured line per request.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
			"client":  c.ClientIP(),
		}).Info("request")
	}
}

// Run binds the configured address and serves until ctx is canceled,
// then shuts down gracefully. Binding errors (port in use) are returned
// before anything is served.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", s.cfg.Addr, err)
	}
	fmt.Printf("Dashboard on http://%s\n", displayAddr(ln.Addr().String()))

	srv := &http.Server{Handler: s.engine}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Handler exposes the route tree, for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// displayAddr rewrites a wildcard listen address into something a
// browser accepts.
func displayAddr(addr string) string {
	if host, port, err := net.SplitHostPort(addr); err == nil {
		if host == "" || host == "::" || host == "0.0.0.0" {
			return "localhost:" + port
		}
	}
	return addr
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
