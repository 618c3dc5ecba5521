package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) statistics(c *gin.Context) {
	st, err := s.svc.Admin.Statistics(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to get statistics")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) refreshStatistics(c *gin.Context) {
	st, err := s.svc.Admin.RefreshStatistics(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to update statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Statistics updated successfully", "statistics": st})
}

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.svc.Admin.Dashboard(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to get dashboard data")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) exportUsers(c *gin.Context) {
	users, err := s.svc.Admin.ExportUsers(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to export users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users), "exported_at": time.Now().UTC()})
}

func (s *Server) exportJobs(c *gin.Context) {
	jobs, err := s.svc.Admin.ExportJobs(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to export jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs), "exported_at": time.Now().UTC()})
}
