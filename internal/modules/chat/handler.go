package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sahayak/internal/domain"
	"sahayak/internal/middleware"
	"sahayak/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/messages", middleware.RequireRole(domain.RoleUser, domain.RoleProvider), h.SendMessage)
	rg.GET("/bookings/:id/messages", h.GetMessages)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	m, err := h.service.Send(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c), middleware.Role(c), req.Body)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": m})
}

func (h *Handler) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	list, err := h.service.List(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c), middleware.Role(c), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if list == nil {
		list = []domain.Message{}
	}
	response.Success(c, http.StatusOK, gin.H{"messages": list})
}
