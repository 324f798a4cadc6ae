package controller

import (
	"leadform_backend/internal/service"
	"leadform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RenderController serves the public read-only surfaces. It never writes the
// schema; everything it returns is built from a snapshot.
type RenderController struct {
	Render  *service.RenderService
	Preview *service.PreviewService
}

func NewRenderController(render *service.RenderService, preview *service.PreviewService) *RenderController {
	return &RenderController{Render: render, Preview: preview}
}

// @Summary Linear one-page view of a published form
// @Tags public
// @Produce json
// @Param id path string true "Form id"
// @Success 200 {object} util.Response
// @Router /api/public/forms/{id}/view [get]
func (c *RenderController) GetFormView(ctx *gin.Context) {
	view, err := c.Render.PublicForm(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Preview view for a builder hand-off token
// @Tags public
// @Produce json
// @Param token path string true "Preview token"
// @Success 200 {object} util.Response
// @Router /api/public/preview/{token}/view [get]
func (c *RenderController) GetPreviewView(ctx *gin.Context) {
	payload := c.Preview.Load(ctx.Request.Context(), ctx.Param("token"))

	form := payload.Form
	if form.Title == "" {
		form.Title = payload.Title
	}
	form.Description = payload.Description
	view := service.BuildFormView(&form, payload.Questions)

	util.Success(ctx, gin.H{"mode": payload.Mode, "view": view})
}
