package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smart-practice/backend/internal/identity"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
)

func (s *Server) GetProfile(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.userSvc.Profile(c.Request.Context(), caller.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.updateProfile(c, caller.ID)
}

func (s *Server) ListMyApplications(c *gin.Context) {
	applications, err := s.applicationSvc.ListMine(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.userSvc.List(c.Request.Context(), userdomain.ListRequest{
		Search: strings.TrimSpace(c.Query("search")),
		Role:   strings.TrimSpace(c.Query("role")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) ChangeUserRole(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.ChangeRole(c.Request.Context(), userdomain.ChangeRoleRequest{
		UserID: id,
		Role:   req.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
