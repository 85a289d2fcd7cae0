package rating

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sahayak/internal/domain"
	"sahayak/internal/middleware"
	"sahayak/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/providers/:id/ratings", h.ListForProvider)
	}

	if protected != nil {
		user := middleware.RequireRole(domain.RoleUser)
		protected.POST("/bookings/:id/rating", user, h.Create)
		protected.PUT("/bookings/:id/rating", user, h.Update)
		protected.GET("/bookings/:id/rating", h.Check)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	r, err := h.svc.Create(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"), *req.Stars, req.Review)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rating": r})
}

func (h *Handler) Update(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	r, err := h.svc.Update(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"), *req.Stars, req.Review)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rating": r})
}

func (h *Handler) Check(c *gin.Context) {
	res, err := h.svc.Check(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c), middleware.Role(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListForProvider(c *gin.Context) {
	res, err := h.svc.ListForProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
