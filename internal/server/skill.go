package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	skilldomain "github.com/smart-practice/backend/internal/skill/domain"
)

func (s *Server) ListSkills(c *gin.Context) {
	skills, err := s.skillSvc.ListMine(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

type addSkillRequest struct {
	SkillName string `json:"skill_name"`
}

func (s *Server) AddSkill(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	skill, err := s.skillSvc.Add(c.Request.Context(), skilldomain.AddRequest{
		SkillName: req.SkillName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"skill": skill})
}

func (s *Server) DeleteSkill(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.skillSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted"})
}

func (s *Server) ListPendingSkills(c *gin.Context) {
	skills, err := s.skillSvc.ListPending(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

type reviewSkillRequest struct {
	IsVerified bool `json:"is_verified"`
}

func (s *Server) ReviewSkill(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req reviewSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.skillSvc.Review(c.Request.Context(), skilldomain.ReviewRequest{
		SkillID:    id,
		IsVerified: req.IsVerified,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill verification updated"})
}
