package ticket

import (
	"net/http"

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
	raiser := middleware.RequireRole(domain.RoleUser, domain.RoleProvider)
	rg.POST("/tickets", raiser, h.Create)
	rg.GET("/tickets/me", raiser, h.ListMine)
	rg.GET("/tickets/:id", h.Get)
}

// RegisterAdminRoutes expects admin to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/tickets", h.List)
	admin.PATCH("/tickets/:id/status", h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	t, err := h.service.Create(c.Request.Context(), middleware.PrincipalID(c), middleware.Role(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), middleware.PrincipalID(c), middleware.Role(c))
	respondList(c, list, err)
}

func (h *Handler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c), middleware.Role(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("status"))
	respondList(c, list, err)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	t, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func respondList(c *gin.Context, list []domain.Ticket, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	if list == nil {
		list = []domain.Ticket{}
	}
	response.Success(c, http.StatusOK, gin.H{"tickets": list})
}
