// Package httpserver serves health, metrics and the latest controller state.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nunchuk/host/config"
	"nunchuk/host/monitor"
	"nunchuk/nunchuk"
	"nunchuk/protocol"
)

// Source is the state the status routes report.
type Source interface {
	Latest() (monitor.Reading, bool)
	Identity() (protocol.Identify, bool)
	Stats() monitor.Stats
	Ready() bool
}

// Server wraps the gin router and its http.Server.
type Server struct {
	srv *http.Server
}

type sampleResponse struct {
	Clock    uint32         `json:"clock"`
	OK       bool           `json:"ok"`
	Received time.Time      `json:"received"`
	Raw      string         `json:"raw"`
	Sample   nunchuk.Sample `json:"sample"`
}

type identityResponse struct {
	Version  uint32 `json:"version"`
	Mode     string `json:"mode"`
	OK       bool   `json:"ok"`
	ID       string `json:"id"`
	Nunchuk  bool   `json:"nunchuk"`
	Matching bool   `json:"protocol_match"`
}

// New builds the router: /healthz, /readyz, /sample, /identity, /stats and
// the metrics route when metricsHandler is not nil.
func New(cfg config.HTTPConfig, metricsHandler http.Handler, src Source) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/readyz", func(c *gin.Context) {
		if src.Ready() {
			c.String(http.StatusOK, "ready")
			return
		}
		c.String(http.StatusServiceUnavailable, "not-ready")
	})
	r.GET("/sample", func(c *gin.Context) {
		rd, ok := src.Latest()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no sample yet"})
			return
		}
		c.JSON(http.StatusOK, sampleResponse{
			Clock:    rd.Clock,
			OK:       rd.OK,
			Received: rd.Received,
			Raw:      fmt.Sprintf("% x", rd.Frame[:]),
			Sample:   rd.Frame.Sample(),
		})
	})
	r.GET("/identity", func(c *gin.Context) {
		id, ok := src.Identity()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not identified"})
			return
		}
		c.JSON(http.StatusOK, identityResponse{
			Version:  id.Version,
			Mode:     id.Mode,
			OK:       id.OK,
			ID:       fmt.Sprintf("% x", id.ID[:]),
			Nunchuk:  id.ID.IsNunchuk(),
			Matching: id.Version == protocol.Version,
		})
	})
	r.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Stats())
	})

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	if metricsHandler != nil {
		r.GET(metricsPath, gin.WrapH(metricsHandler))
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return &Server{srv: srv}
}

// Start serves until Shutdown; it blocks.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
