package controller

import (
	"leadform_backend/internal/model"
	"leadform_backend/internal/service"
	"leadform_backend/internal/util"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// FormController is the authoring surface: form CRUD plus every structural
// and field-level mutation of the question schema.
type FormController struct {
	Service *service.FormService
	Preview *service.PreviewService
	Storage *service.StorageService
}

func NewFormController(svc *service.FormService, preview *service.PreviewService, storage *service.StorageService) *FormController {
	return &FormController{Service: svc, Preview: preview, Storage: storage}
}

func respondServiceError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrFormNotFound, util.ErrQuestionNotFound, util.ErrLeadNotFound:
		util.NotFound(ctx)
	case util.ErrPermissionDenied:
		util.Forbidden(ctx)
	case util.ErrOptionMinimum, util.ErrTitleRequired:
		util.Conflict(ctx, err.Error())
	case util.ErrOptionIndex, util.ErrOptionsUnsupported, util.ErrInvalidType, util.ErrRatingBounds, util.ErrSessionCompleted:
		util.BadRequest(ctx, err.Error())
	case util.ErrFormNotPublished, util.ErrSessionNotFound:
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Create a form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.FormRequest true "Form details"
// @Success 201 {object} util.Response
// @Router /api/forms [post]
func (c *FormController) CreateForm(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.FormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := c.Service.CreateForm(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, form)
}

// @Summary List own forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/forms [get]
func (c *FormController) ListForms(ctx *gin.Context) {
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

	forms, total, err := c.Service.ListForms(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: forms, Total: total, Page: page, Limit: limit})
}

// @Summary Form detail with its question schema
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Success 200 {object} util.Response
// @Router /api/forms/{id} [get]
func (c *FormController) GetForm(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.Service.GetForm(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Update form title, description and branding
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param body body service.FormRequest true "Form details"
// @Success 200 {object} util.Response
// @Router /api/forms/{id} [put]
func (c *FormController) UpdateForm(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.FormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := c.Service.UpdateForm(ctx.Param("id"), user, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, form)
}

// @Summary Delete a form and its questions
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Success 200 {object} util.Response
// @Router /api/forms/{id} [delete]
func (c *FormController) DeleteForm(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteForm(ctx.Param("id"), user); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("id")})
}

// @Summary Publish a form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/publish [post]
func (c *FormController) Publish(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	form, err := c.Service.Publish(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, form)
}

// @Summary Unpublish a form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/unpublish [post]
func (c *FormController) Unpublish(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	form, err := c.Service.Unpublish(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, form)
}

// @Summary Append a new question
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Success 201 {object} util.Response
// @Router /api/forms/{id}/questions [post]
func (c *FormController) AddQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	q, err := c.Service.AddQuestion(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Duplicate a question to the tail of the schema
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Success 201 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId}/duplicate [post]
func (c *FormController) DuplicateQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	q, err := c.Service.DuplicateQuestion(ctx.Param("id"), ctx.Param("questionId"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Delete a question and renumber the rest
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId} [delete]
func (c *FormController) DeleteQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questions, err := c.Service.DeleteQuestion(ctx.Param("id"), ctx.Param("questionId"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary Edit question fields; a type change resets type-specific fields
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Param body body service.QuestionUpdateRequest true "Field edits"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId} [put]
func (c *FormController) UpdateQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(ctx.Param("id"), ctx.Param("questionId"), user, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

type optionRequest struct {
	Value string `json:"value"`
}

// @Summary Append an option to a choice question
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Param body body optionRequest true "Option text"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId}/options [post]
func (c *FormController) AddOption(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req optionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddOption(ctx.Param("id"), ctx.Param("questionId"), user, req.Value)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Rewrite an option
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Param index path int true "Option index"
// @Param body body optionRequest true "Option text"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId}/options/{index} [put]
func (c *FormController) UpdateOption(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid option index")
		return
	}

	var req optionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateOption(ctx.Param("id"), ctx.Param("questionId"), user, index, req.Value)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Remove an option; rejected when only two remain
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Param index path int true "Option index"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId}/options/{index} [delete]
func (c *FormController) RemoveOption(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid option index")
		return
	}

	q, err := c.Service.RemoveOption(ctx.Param("id"), ctx.Param("questionId"), user, index)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

type moveRequest struct {
	Direction service.MoveDirection `json:"direction" binding:"required"`
}

// @Summary Swap a question with its neighbor; no-op at either boundary
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param questionId path string true "Question id"
// @Param body body moveRequest true "up or down"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/questions/{questionId}/move [post]
func (c *FormController) MoveQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req moveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.MoveQuestion(ctx.Param("id"), ctx.Param("questionId"), user, req.Direction)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

type previewRequest struct {
	Mode model.PreviewMode `json:"mode"`
}

// @Summary Hand the current schema off to a preview surface
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param body body previewRequest true "form or chat"
// @Success 201 {object} util.Response
// @Router /api/forms/{id}/preview [post]
func (c *FormController) CreatePreview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req previewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.Preview.Create(ctx.Request.Context(), ctx.Param("id"), user, req.Mode)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"token": token})
}

// @Summary Upload a branding logo
// @Tags forms
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form id"
// @Param file formData file true "Logo image"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/branding/logo [post]
func (c *FormController) UploadLogo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.Service.GetForm(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedLogoExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported image format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := "logos/" + detail.Form.ID + ext
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	detail.Form.LogoURL = url
	if err := c.Service.Store.UpdateForm(detail.Form); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"logoUrl": url})
}
