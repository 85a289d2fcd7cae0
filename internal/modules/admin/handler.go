package admin

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

// RegisterRoutes expects admin to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// statistics
	admin.GET("/stats", h.GetStats)

	// users moderation
	admin.GET("/users", h.GetUsers)
	admin.PATCH("/users/:id/block", h.setUserStatus(domain.StatusBlocked))
	admin.PATCH("/users/:id/unblock", h.setUserStatus(domain.StatusActive))

	// providers moderation
	admin.GET("/providers", h.GetProviders)
	admin.PATCH("/providers/:id/block", h.setProviderStatus(domain.StatusBlocked))
	admin.PATCH("/providers/:id/unblock", h.setProviderStatus(domain.StatusActive))
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) GetUsers(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), 20)

	res, err := h.service.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetProviders(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), 20)

	res, err := h.service.ListProviders(c.Request.Context(), c.Query("category_id"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) setUserStatus(status domain.AccountStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := h.service.SetUserStatus(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"), status)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"user": u})
	}
}

func (h *Handler) setProviderStatus(status domain.AccountStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.service.SetProviderStatus(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"), status)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"provider": p})
	}
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
