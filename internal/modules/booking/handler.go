package booking

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

// RegisterRoutes expects rg to be behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	user := middleware.RequireRole(domain.RoleUser)
	provider := middleware.RequireRole(domain.RoleProvider)

	rg.POST("/bookings", user, h.Create)
	rg.GET("/bookings/me", user, h.ListMine)
	rg.PATCH("/bookings/:id/cancel", user, h.Cancel)

	rg.GET("/provider/bookings", provider, h.ListAssigned)
	rg.GET("/provider/bookings/available", provider, h.ListAvailable)
	rg.PATCH("/bookings/:id/accept", provider, h.Accept)
	rg.PATCH("/bookings/:id/price", provider, h.UpdatePrice)
	rg.PATCH("/bookings/:id/complete", provider, h.Complete)

	rg.GET("/bookings/:id", h.Get)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.PrincipalID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Accept(c *gin.Context) {
	b, err := h.service.Accept(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c))
	h.respond(c, b, err)
}

func (h *Handler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.UpdatePrice(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c), *req.Price)
	h.respond(c, b, err)
}

func (h *Handler) Complete(c *gin.Context) {
	b, err := h.service.Complete(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c))
	h.respond(c, b, err)
}

func (h *Handler) Cancel(c *gin.Context) {
	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c))
	h.respond(c, b, err)
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c), middleware.Role(c))
	h.respond(c, b, err)
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), middleware.PrincipalID(c))
	h.respondList(c, list, err)
}

func (h *Handler) ListAssigned(c *gin.Context) {
	list, err := h.service.ListAssigned(c.Request.Context(), middleware.PrincipalID(c))
	h.respondList(c, list, err)
}

func (h *Handler) ListAvailable(c *gin.Context) {
	list, err := h.service.ListAvailable(c.Request.Context(), middleware.PrincipalID(c))
	h.respondList(c, list, err)
}

func (h *Handler) respond(c *gin.Context, b *domain.Booking, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) respondList(c *gin.Context, list []domain.Booking, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	if list == nil {
		list = []domain.Booking{}
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}
