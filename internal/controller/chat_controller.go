package controller

import (
	"leadform_backend/internal/service"
	"leadform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController drives the conversational surface.
type ChatController struct {
	Chat    *service.ChatService
	Preview *service.PreviewService
}

func NewChatController(chat *service.ChatService, preview *service.PreviewService) *ChatController {
	return &ChatController{Chat: chat, Preview: preview}
}

// @Summary Start a chat wizard session for a published form
// @Tags public
// @Produce json
// @Param id path string true "Form id"
// @Success 201 {object} util.Response
// @Router /api/public/forms/{id}/chat/start [post]
func (c *ChatController) StartForForm(ctx *gin.Context) {
	turn, err := c.Chat.StartForForm(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, turn)
}

// @Summary Start a chat wizard session for a preview token
// @Tags public
// @Produce json
// @Param token path string true "Preview token"
// @Success 201 {object} util.Response
// @Router /api/public/preview/{token}/chat/start [post]
func (c *ChatController) StartForPreview(ctx *gin.Context) {
	payload := c.Preview.Load(ctx.Request.Context(), ctx.Param("token"))

	turn, err := c.Chat.StartForPreview(ctx.Request.Context(), payload)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, turn)
}

type chatAnswerRequest struct {
	Value string `json:"value"`
}

// @Summary Answer the current question of a session
// @Tags public
// @Accept json
// @Produce json
// @Param sessionId path string true "Session id"
// @Param body body chatAnswerRequest true "Answer value"
// @Success 200 {object} util.Response
// @Router /api/public/chat/{sessionId}/answer [post]
func (c *ChatController) SubmitAnswer(ctx *gin.Context) {
	var req chatAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	turn, err := c.Chat.SubmitAnswer(ctx.Request.Context(), ctx.Param("sessionId"), req.Value)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, turn)
}

// @Summary Current turn of a session, e.g. after a reload
// @Tags public
// @Produce json
// @Param sessionId path string true "Session id"
// @Success 200 {object} util.Response
// @Router /api/public/chat/{sessionId} [get]
func (c *ChatController) GetTurn(ctx *gin.Context) {
	turn, err := c.Chat.GetTurn(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, turn)
}
