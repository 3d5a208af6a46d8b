package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/assistant"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
)

// ChatRequest is one user turn sent to the assistant
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// AssistantChat proxies one chat turn to the Gemini-backed assistant. The
// surface degrades rather than errors: an unreachable model or missing key
// yields a friendly fallback reply with a 200.
func AssistantChat(a *assistant.Assistant) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		var req ChatRequest
		if err := c.Bind(&req); err != nil {
			log.Error("Invalid request data", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
		}

		if a == nil {
			log.Warn("Assistant not configured")
			return c.JSON(http.StatusOK, ChatResponse{Reply: assistant.FallbackReply})
		}

		reply, err := a.SendMessage(c.Request().Context(), message)
		if err != nil {
			return c.JSON(http.StatusOK, ChatResponse{Reply: assistant.FallbackReply})
		}

		return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
	}
}
