package controller

import (
	"leadform_backend/internal/model"
	"leadform_backend/internal/service"
	"leadform_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeadController struct {
	Service *service.LeadService
}

func NewLeadController(svc *service.LeadService) *LeadController {
	return &LeadController{Service: svc}
}

// @Summary Submit a linear-form response as a lead
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "Form id"
// @Param body body service.LeadSubmissionRequest true "Collected answers"
// @Success 201 {object} util.Response
// @Router /api/public/forms/{id}/submit [post]
func (c *LeadController) Submit(ctx *gin.Context) {
	var req service.LeadSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lead, err := c.Service.Submit(ctx.Param("id"), model.LeadSourceForm, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"leadId": lead.ID})
}

// @Summary List leads captured by a form
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/leads [get]
func (c *LeadController) ListLeads(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	leads, total, err := c.Service.ListLeads(ctx.Param("id"), user, page, limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: leads, Total: total, Page: page, Limit: limit})
}

// @Summary Lead detail with the question schema for review
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead id"
// @Success 200 {object} util.Response
// @Router /api/leads/{id} [get]
func (c *LeadController) GetLead(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.Service.GetLead(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Delete a lead
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead id"
// @Success 200 {object} util.Response
// @Router /api/leads/{id} [delete]
func (c *LeadController) DeleteLead(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteLead(ctx.Param("id"), user); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("id")})
}
