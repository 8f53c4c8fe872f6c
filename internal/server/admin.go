package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	companydomain "github.com/smart-practice/backend/internal/company/domain"
	referencedomain "github.com/smart-practice/backend/internal/reference/domain"
)

func (s *Server) AdminListCompanies(c *gin.Context) {
	companies, err := s.companySvc.AdminList(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

type adminCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) AdminUpdateCompany(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req adminCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	company, err := s.companySvc.AdminUpdate(c.Request.Context(), companydomain.AdminUpdateRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (s *Server) AdminDeleteCompany(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.companySvc.AdminDelete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

func (s *Server) AdminListVacancies(c *gin.Context) {
	vacancies, err := s.vacancySvc.AdminList(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancies": vacancies})
}

type majorRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateMajor(c *gin.Context) {
	var req majorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		AbortWithError(c, referencedomain.ErrNameRequired)
		return
	}

	major := referencedomain.Major{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.refRepo.CreateMajor(c.Request.Context(), &major); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"major": major})
}

func (s *Server) UpdateMajor(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req majorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		AbortWithError(c, referencedomain.ErrNameRequired)
		return
	}

	major := referencedomain.Major{ID: id, Name: name}
	if err := s.refRepo.UpdateMajor(c.Request.Context(), &major); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"major": major})
}

func (s *Server) DeleteMajor(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.refRepo.DeleteMajor(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Major deleted"})
}

func (s *Server) GetStats(c *gin.Context) {
	stats, err := s.statsRepo.Collect(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
