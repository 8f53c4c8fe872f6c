package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smart-practice/backend/internal/identity"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
)

// Me resolves the caller straight from the request credentials: the Mini App
// calls it before any profile exists, so a missing user is a 404 here rather
// than a 401.
func (s *Server) Me(c *gin.Context) {
	telegramID, err := identity.TelegramIDFromCredentials(
		c.GetHeader("Authorization"),
		c.GetHeader(HeaderTelegramID),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.userSvc.GetByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.userSvc.Profile(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

type updateProfileRequest struct {
	FullName string  `json:"full_name"`
	MajorID  *string `json:"major_id"`
	Course   int     `json:"course"`
}

func (s *Server) UpdateMe(c *gin.Context) {
	telegramID, err := identity.TelegramIDFromCredentials(
		c.GetHeader("Authorization"),
		c.GetHeader(HeaderTelegramID),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.userSvc.GetByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.updateProfile(c, user.ID)
}

func (s *Server) updateProfile(c *gin.Context, userID snowflake.ID) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	majorID, err := parseOptionalSnowflakeID(stringValue(req.MajorID))
	if err != nil {
		AbortWithError(c, newValidationError("major_id", "invalid_major_id", "invalid major_id"))
		return
	}

	user, err := s.userSvc.UpdateProfile(c.Request.Context(), userID, userdomain.UpdateProfileRequest{
		FullName: req.FullName,
		MajorID:  majorID,
		Course:   req.Course,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) ListMajors(c *gin.Context) {
	majors, err := s.refRepo.ListMajors(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"majors": majors})
}
