package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sahayak/internal/domain"
	"sahayak/internal/pkg/response"
	"sahayak/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/categories", h.ListCategories)
	v1.GET("/categories/:id", h.GetCategory)
	v1.GET("/services", h.ListServices)
	v1.GET("/services/:id", h.GetService)
}

// RegisterAdminRoutes expects admin to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/categories", h.CreateCategory)
	admin.PATCH("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)

	admin.POST("/services", h.CreateService)
	admin.PATCH("/services/:id", h.UpdateService)
	admin.DELETE("/services/:id", h.DeleteService)
}

/* ---------- CATEGORY HANDLERS ---------- */

func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if list == nil {
		list = []domain.ServiceCategory{}
	}
	response.Success(c, http.StatusOK, gin.H{"categories": list})
}

func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.service.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !bind(c, &req) {
		return
	}
	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": cat})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if !bind(c, &req) {
		return
	}
	cat, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- SERVICE HANDLERS ---------- */

// ListServices handles GET /services, optionally filtered by ?category_id=.
func (h *Handler) ListServices(c *gin.Context) {
	list, err := h.service.ListServices(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if list == nil {
		list = []domain.Service{}
	}
	response.Success(c, http.StatusOK, gin.H{"services": list})
}

func (h *Handler) GetService(c *gin.Context) {
	svc, err := h.service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.service.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) DeleteService(c *gin.Context) {
	res, err := h.service.DeleteService(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true, "removed": res})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, err)
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.Validation(c, errs)
		return false
	}
	return true
}
