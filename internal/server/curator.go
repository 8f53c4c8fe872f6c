package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	vacancydomain "github.com/smart-practice/backend/internal/vacancy/domain"
)

func (s *Server) ListModerationQueue(c *gin.Context) {
	vacancies, err := s.vacancySvc.ModerationQueue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancies": vacancies})
}

type moderateRequest struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

func (s *Server) ModerateVacancy(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.vacancySvc.Moderate(c.Request.Context(), vacancydomain.ModerateRequest{
		VacancyID: id,
		Action:    vacancydomain.ModerateAction(req.Action),
		Comment:   req.Comment,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vacancy moderated"})
}

func (s *Server) ListExportRequests(c *gin.Context) {
	requests, err := s.exportSvc.ListPending(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (s *Server) DownloadExport(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	workbook, err := s.exportSvc.BuildWorkbook(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer os.Remove(workbook.Path)

	c.FileAttachment(workbook.Path, workbook.Filename)
}

func (s *Server) MarkExportSent(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.exportSvc.MarkSent(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Export marked as sent"})
}
