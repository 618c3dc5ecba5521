package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kongenga/kongenga/internal/server/models"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.logger))

	authn := JWTAuth(s.jwtSecret)
	manager := RequireRole(models.RoleSiteManager)

	r.GET("/health", s.health)

	a := r.Group("/auth")
	a.POST("/register", s.register)
	a.POST("/login", s.login)

	u := r.Group("/users", authn)
	u.GET("/me", s.me)
	u.PUT("/me", s.updateMe)
	u.POST("/me/avatar", s.presignAvatar)
	u.POST("/favorites/:jobId", s.toggleFavorite)
	u.GET("/favorites", s.listFavorites)
	u.PUT("/progress", s.updateProgress)
	u.GET("", manager, s.listUsers)
	u.GET("/stats", manager, s.userStats)

	r.GET("/sectors", s.listSectors)
	r.GET("/sectors/:id", s.getSector)
	r.POST("/sectors", authn, manager, s.createSector)

	r.GET("/jobs", s.listJobs)
	r.GET("/jobs/sector/:sector", s.jobsBySector)
	r.GET("/jobs/:id", s.getJob)
	r.POST("/jobs", authn, manager, s.createJob)
	r.PUT("/jobs/:id", authn, manager, s.updateJob)
	r.DELETE("/jobs/:id", authn, manager, s.deleteJob)

	r.GET("/companies", s.listCompanies)
	r.GET("/companies/:id", s.getCompany)
	r.POST("/companies", authn, manager, s.createCompany)

	r.GET("/training", s.listTrainings)
	r.GET("/training/skill/:skill", s.trainingsBySkill)
	r.GET("/training/:id", s.getTraining)
	r.POST("/training", authn, manager, s.createTraining)

	r.GET("/testimonials", s.listTestimonials)
	r.GET("/testimonials/job/:jobId", s.testimonialsByJob)
	r.POST("/testimonials", authn, s.submitTestimonial)
	r.GET("/testimonials/pending", authn, manager, s.pendingTestimonials)
	r.PUT("/testimonials/:id/approve", authn, manager, s.approveTestimonial)
	r.PUT("/testimonials/:id/verify", authn, manager, s.verifyTestimonial)
	r.DELETE("/testimonials/:id", authn, manager, s.deleteTestimonial)

	adm := r.Group("/admin", authn, manager)
	adm.GET("/statistics", s.statistics)
	adm.POST("/statistics/refresh", s.refreshStatistics)
	adm.GET("/dashboard", s.dashboard)
	adm.GET("/export/users", s.exportUsers)
	adm.GET("/export/jobs", s.exportJobs)

	r.NoRoute(func(c *gin.Context) {
		abortWithDetail(c, http.StatusNotFound, "Not Found")
	})
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
