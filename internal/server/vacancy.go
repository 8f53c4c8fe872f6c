package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	vacancydomain "github.com/smart-practice/backend/internal/vacancy/domain"
)

const dateOnlyLayout = "2006-01-02"

func (s *Server) ListVacancies(c *gin.Context) {
	vacancies, err := s.vacancySvc.List(c.Request.Context(), vacancydomain.ListRequest{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancies": vacancies})
}

func (s *Server) GetVacancy(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	vacancy, err := s.vacancySvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancy": vacancy})
}

type vacancyRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Position      string  `json:"position"`
	MajorIDs      []int64 `json:"major_ids"`
	SlotsCount    int     `json:"slots_count"`
	DeadlineDate  string  `json:"deadline_date"`
	Reward        string  `json:"reward"`
	HeaderBgColor string  `json:"header_bg_color"`
}

func (r vacancyRequest) toCreateRequest() (vacancydomain.CreateRequest, error) {
	req := vacancydomain.CreateRequest{
		Title:         r.Title,
		Description:   r.Description,
		Position:      r.Position,
		MajorIDs:      r.MajorIDs,
		SlotsCount:    r.SlotsCount,
		Reward:        r.Reward,
		HeaderBgColor: r.HeaderBgColor,
	}
	if trimmed := strings.TrimSpace(r.DeadlineDate); trimmed != "" {
		deadline, err := time.Parse(dateOnlyLayout, trimmed)
		if err != nil {
			return vacancydomain.CreateRequest{}, newValidationError("deadline_date", "invalid_deadline_date", "invalid deadline_date")
		}
		req.DeadlineDate = deadline
	}
	return req, nil
}

func (s *Server) CreateVacancy(c *gin.Context) {
	var req vacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	createReq, err := req.toCreateRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	vacancy, err := s.vacancySvc.Create(c.Request.Context(), createReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vacancy": vacancy})
}

func (s *Server) UpdateVacancy(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req vacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updateReq, err := req.toCreateRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	vacancy, err := s.vacancySvc.Update(c.Request.Context(), id, updateReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancy": vacancy})
}

func (s *Server) DeleteVacancy(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.vacancySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vacancy deleted"})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) SetVacancyStatus(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	vacancy, err := s.vacancySvc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancy": vacancy})
}

func (s *Server) ApplyToVacancy(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.applicationSvc.Apply(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application submitted successfully"})
}

// HideVacancy acknowledges the request without storing anything; the feed
// keeps no per-student hidden list.
func (s *Server) HideVacancy(c *gin.Context) {
	if _, err := parseSnowflakeParam(c.Param("id")); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vacancy hidden"})
}

func (s *Server) ListMyVacancies(c *gin.Context) {
	vacancies, err := s.vacancySvc.ListMine(c.Request.Context(), c.Query("status"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacancies": vacancies})
}

func (s *Server) DuplicateVacancy(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	vacancy, err := s.vacancySvc.Duplicate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vacancy": vacancy})
}

func (s *Server) ListVacancyApplications(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	list, err := s.applicationSvc.ListForVacancy(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) RequestExport(c *gin.Context) {
	id, err := parseSnowflakeParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	request, err := s.exportSvc.Request(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}
