package server

import (
	"net/http"
	"time"

	"github.com/epoint/springlab/container"
	"github.com/epoint/springlab/net/resp"
	"github.com/epoint/springlab/version"
	"github.com/gin-gonic/gin"
)

// registerManagementRoutes mounts the housekeeping endpoints under r
func (s *Server) registerManagementRoutes(r *gin.RouterGroup) {
	r.GET("/health", s.health)
	r.GET("/health/liveness", s.liveness)
	r.GET("/health/readiness", s.readiness)
	r.GET("/info", s.info)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	s.c.ManageRoutes(r)
}

func (s *Server) health(c *gin.Context) {
	report := s.c.Health(c.Request.Context())
	status := http.StatusOK
	if !report.IsUp() {
		status = http.StatusServiceUnavailable
	}
	resp.WithStatusCode(c.Writer, status, report)
}

func (s *Server) liveness(c *gin.Context) {
	resp.Success(c.Writer, container.HealthReport{Status: container.HealthUp})
}

func (s *Server) readiness(c *gin.Context) {
	if !s.IsReady() {
		resp.WithStatusCode(c.Writer, http.StatusServiceUnavailable, container.HealthReport{Status: container.HealthDown})
		return
	}
	resp.Success(c.Writer, container.HealthReport{Status: container.HealthUp})
}

func (s *Server) info(c *gin.Context) {
	profiles := s.conf.Profiles
	if profiles == nil {
		profiles = []string{}
	}

	resp.Success(c.Writer, map[string]any{
		"app": map[string]any{
			"name":     s.conf.AppName,
			"run_mode": s.conf.RunMode,
			"profiles": profiles,
		},
		"build": version.GetVersionInfo(),
		"context": map[string]any{
			"id":         s.c.ID(),
			"started_at": s.c.StartedAt().Format(time.RFC3339),
			"uptime":     time.Since(s.c.StartedAt()).Round(time.Second).String(),
			"components": len(s.c.Names()),
		},
	})
}
