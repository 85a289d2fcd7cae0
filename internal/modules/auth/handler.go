package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sahayak/internal/middleware"
	"sahayak/internal/pkg/response"
)

const tokenCookie = "token"

type Handler struct {
	service      *Service
	cookieTTL    time.Duration
	secureCookie bool
}

func NewHandler(service *Service, cookieTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{service: service, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.RegisterUser)
		authGroup.POST("/login", h.LoginUser)
		authGroup.POST("/provider/register", h.RegisterProvider)
		authGroup.POST("/provider/login", h.LoginProvider)
		authGroup.POST("/admin/login", h.LoginAdmin)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/me", h.Me)
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	res, err := h.service.RegisterUser(c.Request.Context(), req)
	h.respond(c, http.StatusCreated, res, err)
}

func (h *Handler) RegisterProvider(c *gin.Context) {
	var req RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	res, err := h.service.RegisterProvider(c.Request.Context(), req)
	h.respond(c, http.StatusCreated, res, err)
}

func (h *Handler) LoginUser(c *gin.Context) {
	h.login(c, h.service.LoginUser)
}

func (h *Handler) LoginProvider(c *gin.Context) {
	h.login(c, h.service.LoginProvider)
}

func (h *Handler) LoginAdmin(c *gin.Context) {
	h.login(c, h.service.LoginAdmin)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

func (h *Handler) Me(c *gin.Context) {
	me, err := h.service.Me(c.Request.Context(), middleware.PrincipalID(c), middleware.Role(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

func (h *Handler) login(c *gin.Context, fn func(ctx context.Context, req LoginRequest) (*AuthResult, error)) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	res, err := fn(c.Request.Context(), req)
	h.respond(c, http.StatusOK, res, err)
}

func (h *Handler) respond(c *gin.Context, status int, res *AuthResult, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, res.Token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
	response.Success(c, status, res)
}
