package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/kongenga/kongenga/internal/server/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type registerRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	University        string `json:"university"`
	Year              string `json:"year"`
	Field             string `json:"field"`
	PreferredLanguage string `json:"preferredLanguage"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

type toggleFavoriteResponse struct {
	Status string `json:"status"`
	Action string `json:"action"`
	JobID  string `json:"job_id"`
}

type progressResponse struct {
	Status   string          `json:"status"`
	Progress models.Progress `json:"progress"`
}

type avatarResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func badBody(c *gin.Context) {
	abortWithDetail(c, http.StatusBadRequest, "Invalid request body")
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	res, err := s.svc.Users.Register(c.Request.Context(), services.Registration{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		University:        req.University,
		Year:              req.Year,
		Field:             req.Field,
		PreferredLanguage: req.PreferredLanguage,
	})
	if err != nil {
		s.writeError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: res.AccessToken, TokenType: res.TokenType, User: res.User})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	res, err := s.svc.Users.Login(c.Request.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		s.writeError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: res.AccessToken, TokenType: res.TokenType, User: res.User})
}

func (s *Server) me(c *gin.Context) {
	u, err := s.svc.Users.Me(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, notFound(err, "User not found"), "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) updateMe(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badBody(c)
		return
	}

	u, err := s.svc.Users.UpdateProfile(c.Request.Context(), userID(c), upd)
	if err != nil {
		s.writeError(c, notFound(err, "User not found"), "Profile update failed")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) presignAvatar(c *gin.Context) {
	up, err := s.svc.Avatars.PresignUpload(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, notFound(err, "User not found"), "Failed to prepare avatar upload")
		return
	}
	c.JSON(http.StatusOK, avatarResponse{UploadURL: up.URL, Key: up.Key, ExpiresAt: up.ExpiresAt})
}

func (s *Server) toggleFavorite(c *gin.Context) {
	jobID := c.Param("jobId")

	action, err := s.svc.Users.ToggleFavorite(c.Request.Context(), userID(c), jobID)
	if err != nil {
		s.writeError(c, notFound(err, "Job not found"), "Failed to update favorites")
		return
	}
	c.JSON(http.StatusOK, toggleFavoriteResponse{Status: "success", Action: action, JobID: jobID})
}

func (s *Server) listFavorites(c *gin.Context) {
	jobs, err := s.svc.Users.ListFavorites(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err, "Failed to get favorites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": jobs})
}

func (s *Server) updateProgress(c *gin.Context) {
	var partial map[string]int
	if err := c.ShouldBindJSON(&partial); err != nil {
		badBody(c)
		return
	}

	p, err := s.svc.Users.UpdateProgress(c.Request.Context(), userID(c), partial)
	if err != nil {
		s.writeError(c, err, "Failed to update progress")
		return
	}
	c.JSON(http.StatusOK, progressResponse{Status: "success", Progress: p})
}

func (s *Server) listUsers(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}

	users, err := s.svc.Users.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		s.writeError(c, err, "Failed to get users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) userStats(c *gin.Context) {
	st, err := s.svc.Users.Stats(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to get user statistics")
		return
	}
	c.JSON(http.StatusOK, st)
}
