// Package gin serves the marketway HTTP API.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/marketway"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// LineFinder looks up lines in the active catalog.
type LineFinder interface {
	FindLineByID(ctx context.Context, id string) (*marketway.Line, error)
	FindLinesInAisle(ctx context.Context, aisle int) ([]*marketway.Line, error)
}

// Server represents the HTTP server. Services are assigned before Handler
// or Run is called; any left nil answer with EUNAVAILABLE.
type Server struct {
	Locator   marketway.Locator
	Navigator marketway.Navigator
	Reloader  marketway.Reloader
	Assistant marketway.Assistant
	Lines     LineFinder

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer

	Logger *slog.Logger
}

// NewServer creates a Server that logs to logger.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{Logger: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID(), s.logRequests())

	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)
	router.GET("/chat", s.handleChat)

	v1 := router.Group("/v1")
	{
		v1.GET("/locate", s.handleLocate)
		v1.GET("/directions", s.handleDirections)
		v1.GET("/lines/:id", s.handleLine)
		v1.GET("/aisles/:aisle/lines", s.handleAisleLines)
		v1.POST("/reload", s.handleReload)
	}

	if s.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	}
	return router
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestID tags every request with an ID, honoring one sent by the client.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.Logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetString("request_id"),
			"duration", time.Since(begin),
		)
	}
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case marketway.EINVALID:
		return http.StatusBadRequest
	case marketway.ENOTFOUND:
		return http.StatusNotFound
	case marketway.ECONFLICT:
		return http.StatusConflict
	case marketway.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error body. Internal errors are logged and
// their detail withheld from the client.
func (s *Server) writeError(c *gin.Context, err error) {
	code := marketway.ErrorCode(err)
	if code == marketway.EINTERNAL {
		s.Logger.Error("http error",
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
			"err", err,
		)
	}
	c.JSON(ErrorStatusCode(code), gin.H{"error": marketway.ErrorMessage(err)})
}

func unavailable(service string) error {
	return marketway.Errorf(marketway.EUNAVAILABLE, "%s not configured", service)
}
