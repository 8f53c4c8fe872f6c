package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	companydomain "github.com/smart-practice/backend/internal/company/domain"
	"github.com/smart-practice/backend/internal/identity"
)

type createCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) CreateCompany(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	company, err := s.companySvc.Create(c.Request.Context(), caller.ID, companydomain.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

func (s *Server) GetMyCompany(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	company, err := s.companySvc.Get(c.Request.Context(), caller.CompanyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

type updateCompanyRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

func (s *Server) UpdateMyCompany(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	company, err := s.companySvc.Update(c.Request.Context(), caller.CompanyID, companydomain.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (s *Server) CompanyInvite(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	invite, err := s.companySvc.Invite(c.Request.Context(), caller.CompanyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, invite)
}

type joinCompanyRequest struct {
	InviteCode string `json:"invite_code"`
}

func (s *Server) JoinCompany(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req joinCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	companyID, err := s.companySvc.Join(c.Request.Context(), caller.ID, req.InviteCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Successfully joined company",
		"company_id": companyID,
	})
}

func (s *Server) ListCompanyMembers(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	members, err := s.companySvc.Members(c.Request.Context(), caller.CompanyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
