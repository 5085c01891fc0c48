package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"
	"github.com/podderSoykot/Saloon-chatbot/internal/service"
	"github.com/podderSoykot/Saloon-chatbot/pkg/logger"
)

// ChatHandler relays widget messages to the hosted chatbot service.
type ChatHandler struct {
	relay *service.RelayService
}

func NewChatHandler(relay *service.RelayService) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Chat handles POST /api/chat. The message must be a non-empty string
// after trimming; nothing is forwarded otherwise.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, ok := decodeMessage(req.Message)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must be a string"})
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	reply, err := h.relay.Send(c.Request.Context(), req.UserID, message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyReply):
			c.JSON(http.StatusBadGateway, gin.H{"error": "chatbot returned an empty reply"})
		case errors.Is(err, service.ErrUpstream):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "chatbot service unavailable"})
		default:
			logger.Errorf("chat relay failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, model.ChatReply{Reply: reply})
}

// decodeMessage unwraps the raw message field, rejecting absent values
// and non-string JSON types.
func decodeMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
