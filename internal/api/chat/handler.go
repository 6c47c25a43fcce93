package chat

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/service"
)

// Speaker streams synthesized audio for a prompt.
type Speaker interface {
	Synthesize(ctx context.Context, prompt string) (io.ReadCloser, error)
}

// Handler handles chat API requests
type Handler struct {
	chatService *service.ChatService
	speaker     Speaker // nil disables /tts
	logger      *zap.Logger
}

// NewHandler creates a new chat handler. speaker may be nil.
func NewHandler(chatService *service.ChatService, speaker Speaker, logger *zap.Logger) *Handler {
	return &Handler{chatService: chatService, speaker: speaker, logger: logger}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.POST("/tts", h.TTS)
}

// Chat runs one conversational turn.
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), req.UserInput)
	if err != nil {
		h.logger.Error("chat turn failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.ChatResponse{Result: result})
}

// TTS streams raw audio bytes for a prompt.
func (h *Handler) TTS(c *gin.Context) {
	if h.speaker == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "tts not configured"})
		return
	}

	var req domain.TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := h.speaker.Synthesize(c.Request.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("speech synthesis failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	defer audio.Close()

	c.Header("Content-Type", "audio/mpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, audio); err != nil {
		h.logger.Warn("audio stream interrupted", zap.Error(err))
	}
}
