package chatbot

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sahayak/internal/pkg/response"
)

type AskRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chatbot", h.Ask)
}

func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	answer, err := h.service.Ask(c.Request.Context(), req.Message)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reply": answer})
}
