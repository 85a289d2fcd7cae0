package payment

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/middleware"
	"sahayak/internal/pkg/response"
)

type Handler struct {
	service    *Service
	successURL string
	failureURL string
	log        *zap.Logger
}

func NewHandler(service *Service, successURL, failureURL string, log *zap.Logger) *Handler {
	return &Handler{service: service, successURL: successURL, failureURL: failureURL, log: log}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	user := middleware.RequireRole(domain.RoleUser)
	rg.POST("/bookings/:id/payment/order", user, h.CreateOrder)
	rg.POST("/payments/verify", user, h.Verify)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/callback", h.Callback)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	resp, err := h.service.CreateOrder(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// Callback handles the gateway's browser form post and always redirects.
func (h *Handler) Callback(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warn("payment callback with malformed form", zap.Error(err))
		c.Redirect(http.StatusSeeOther, withQuery(h.failureURL, "reason", "invalid_request"))
		return
	}

	b, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		c.Redirect(http.StatusSeeOther, withQuery(h.failureURL, "order_id", req.OrderID))
		return
	}
	c.Redirect(http.StatusSeeOther, withQuery(h.successURL, "booking_id", b.ID))
}

func withQuery(raw, key, value string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
