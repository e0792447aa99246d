// Package api exposes the news, summarize and chat operations over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/itchuru/news-service/internal/service"
)

// Fixed 503 payloads when the Gemini client has no API key.
const (
	summaryUnavailable = "Gemini 모델이 초기화되지 않아 요약할 수 없습니다. 😿"
	chatUnavailable    = "Gemini 모델이 초기화되지 않아 답변할 수 없습니다. 😿"
	emptyMessageError  = "메시지가 비어있습니다."
)

type Handler struct {
	svc *service.Service
	log *zap.Logger
}

func NewHandler(svc *service.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/news", h.News)
		api.GET("/summarize-naver", h.SummarizeNaver)
		api.GET("/summarize-google", h.SummarizeGoogle)
		api.POST("/chat", h.Chat)
	}
	r.GET("/health", h.Health)
}

// News: GET /api/news
// Both providers are fetched through the cache; a failed side carries
// an {"error": reason} object in its slot and the response is 500.
func (h *Handler) News(c *gin.Context) {
	ov := h.svc.AllNews(c.Request.Context())

	status := http.StatusOK
	var korean, global any

	korean = ov.Korean
	if ov.KoreanErr != nil {
		korean = gin.H{"error": ov.KoreanErr.Error()}
		status = http.StatusInternalServerError
	}
	global = ov.Global
	if ov.GlobalErr != nil {
		global = gin.H{"error": ov.GlobalErr.Error()}
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{
		"korean_news": korean,
		"global_news": global,
	})
}

// SummarizeNaver: GET /api/summarize-naver
func (h *Handler) SummarizeNaver(c *gin.Context) {
	h.summarize(c, service.ProviderNaver)
}

// SummarizeGoogle: GET /api/summarize-google
func (h *Handler) SummarizeGoogle(c *gin.Context) {
	h.summarize(c, service.ProviderGoogle)
}

func (h *Handler) summarize(c *gin.Context, provider string) {
	summary, err := h.svc.Summarize(c.Request.Context(), provider)
	switch {
	case errors.Is(err, service.ErrLLMUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"summary": summaryUnavailable})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"summary": summary})
	}
}

// Chat: POST /api/chat
// Body: {"message": "..."}
func (h *Handler) Chat(c *gin.Context) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), payload.Message)
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyMessageError})
	case errors.Is(err, service.ErrLLMUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"response": chatUnavailable})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"response": reply})
	}
}

// Health: GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
