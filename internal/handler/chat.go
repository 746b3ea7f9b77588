package handler

import (
	"context"
	"net/http"

	"bevin/internal/model"

	"github.com/gin-gonic/gin"
)

// ChatRunner is the pipeline surface the handler needs. It never errors;
// pipeline failures arrive as Done-shaped responses.
type ChatRunner interface {
	Chat(ctx context.Context, req *model.ChatRequest) *model.ChatResponse
}

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	chat ChatRunner
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatRunner) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/v1/chat. The response is always 200 so the UI
// never needs to special-case transport errors; a malformed body is
// treated as an empty message, which the pipeline answers as a greeting.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.ChatRequest{}
	}

	resp := h.chat.Chat(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}
