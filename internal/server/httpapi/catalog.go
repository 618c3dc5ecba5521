package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kongenga/kongenga/internal/server/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// paging reads skip and limit, answering 400 itself on bad input.
func paging(c *gin.Context) (skip, limit int, ok bool) {
	skip, limit = 0, defaultLimit
	var err error
	if v := c.Query("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
			abortWithDetail(c, http.StatusBadRequest, "skip must be a non-negative integer")
			return 0, 0, false
		}
	}
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > maxLimit {
			abortWithDetail(c, http.StatusBadRequest, "limit must be between 1 and 100")
			return 0, 0, false
		}
	}
	return skip, limit, true
}

func (s *Server) listSectors(c *gin.Context) {
	out, err := s.svc.Catalog.Sectors(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to get sectors")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSector(c *gin.Context) {
	out, err := s.svc.Catalog.Sector(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "Sector not found"), "Failed to get sector")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createSector(c *gin.Context) {
	var sec models.Sector
	if err := c.ShouldBindJSON(&sec); err != nil {
		badBody(c)
		return
	}
	if err := s.svc.Catalog.CreateSector(c.Request.Context(), &sec); err != nil {
		s.writeError(c, err, "Failed to create sector")
		return
	}
	c.JSON(http.StatusCreated, sec)
}

func (s *Server) listJobs(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	f := models.JobFilter{SectorID: c.Query("sector"), Search: c.Query("search"), Skip: skip, Limit: limit}

	out, err := s.svc.Catalog.Jobs(c.Request.Context(), f)
	if err != nil {
		s.writeError(c, err, "Failed to get jobs")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) jobsBySector(c *gin.Context) {
	out, err := s.svc.Catalog.Jobs(c.Request.Context(), models.JobFilter{SectorID: c.Param("sector")})
	if err != nil {
		s.writeError(c, err, "Failed to get jobs by sector")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getJob(c *gin.Context) {
	out, err := s.svc.Catalog.Job(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "Job not found"), "Failed to get job")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createJob(c *gin.Context) {
	var j models.Job
	if err := c.ShouldBindJSON(&j); err != nil {
		badBody(c)
		return
	}
	if err := s.svc.Catalog.CreateJob(c.Request.Context(), &j); err != nil {
		s.writeError(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, j)
}

// updateJob decodes the body over the stored job, so absent fields keep
// their value.
func (s *Server) updateJob(c *gin.Context) {
	id := c.Param("id")
	j, err := s.svc.Catalog.RawJob(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, notFound(err, "Job not found"), "Failed to update job")
		return
	}
	if err := c.ShouldBindJSON(j); err != nil {
		badBody(c)
		return
	}
	j.ID = id

	if err := s.svc.Catalog.UpdateJob(c.Request.Context(), j); err != nil {
		s.writeError(c, notFound(err, "Job not found"), "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, j)
}

func (s *Server) deleteJob(c *gin.Context) {
	if err := s.svc.Catalog.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, notFound(err, "Job not found"), "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

func (s *Server) listCompanies(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	out, err := s.svc.Catalog.Companies(c.Request.Context(), skip, limit)
	if err != nil {
		s.writeError(c, err, "Failed to get companies")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getCompany(c *gin.Context) {
	out, err := s.svc.Catalog.Company(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "Company not found"), "Failed to get company")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createCompany(c *gin.Context) {
	var co models.Company
	if err := c.ShouldBindJSON(&co); err != nil {
		badBody(c)
		return
	}
	if err := s.svc.Catalog.CreateCompany(c.Request.Context(), &co); err != nil {
		s.writeError(c, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, co)
}

func (s *Server) listTrainings(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	out, err := s.svc.Catalog.Trainings(c.Request.Context(), skip, limit)
	if err != nil {
		s.writeError(c, err, "Failed to get training programs")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getTraining(c *gin.Context) {
	out, err := s.svc.Catalog.Training(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "Training not found"), "Failed to get training")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) trainingsBySkill(c *gin.Context) {
	out, err := s.svc.Catalog.TrainingsBySkill(c.Request.Context(), c.Param("skill"))
	if err != nil {
		s.writeError(c, err, "Failed to get training by skill")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createTraining(c *gin.Context) {
	var t models.Training
	if err := c.ShouldBindJSON(&t); err != nil {
		badBody(c)
		return
	}
	if err := s.svc.Catalog.CreateTraining(c.Request.Context(), &t); err != nil {
		s.writeError(c, err, "Failed to create training")
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) listTestimonials(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	out, err := s.svc.Catalog.Testimonials(c.Request.Context(), skip, limit)
	if err != nil {
		s.writeError(c, err, "Failed to get testimonials")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) testimonialsByJob(c *gin.Context) {
	out, err := s.svc.Catalog.TestimonialsByJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		s.writeError(c, err, "Failed to get testimonials for job")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) submitTestimonial(c *gin.Context) {
	var t models.Testimonial
	if err := c.ShouldBindJSON(&t); err != nil {
		badBody(c)
		return
	}
	if err := s.svc.Catalog.SubmitTestimonial(c.Request.Context(), userID(c), &t); err != nil {
		s.writeError(c, err, "Failed to create testimonial")
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) pendingTestimonials(c *gin.Context) {
	out, err := s.svc.Catalog.PendingTestimonials(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to get pending testimonials")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) approveTestimonial(c *gin.Context) {
	if err := s.svc.Catalog.ApproveTestimonial(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, notFound(err, "Testimonial not found"), "Failed to approve testimonial")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial approved successfully"})
}

func (s *Server) verifyTestimonial(c *gin.Context) {
	if err := s.svc.Catalog.VerifyTestimonial(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, notFound(err, "Testimonial not found"), "Failed to verify testimonial")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial verified successfully"})
}

func (s *Server) deleteTestimonial(c *gin.Context) {
	if err := s.svc.Catalog.DeleteTestimonial(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, notFound(err, "Testimonial not found"), "Failed to delete testimonial")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}
