package booking

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sahayak/internal/domain"
	"sahayak/internal/middleware"
	"sahayak/internal/pkg/jwt"
)

func newRouter(t *testing.T, svc *Service) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := jwt.New("handler-secret", time.Hour)
	router := gin.New()
	api := router.Group("/api/v1", middleware.JWTAuth(jwtSvc, nil))
	NewHandler(svc).RegisterRoutes(api)
	return router, jwtSvc
}

func do(t *testing.T, router *gin.Engine, jwtSvc *jwt.Service, method, path, subject string, role domain.Role, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := jwtSvc.GenerateToken(subject, string(role))
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_SecondAcceptIsConflict(t *testing.T) {
	f := newFixture()
	router, jwtSvc := newRouter(t, f.svc)
	f.bookings.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{Status: domain.BookingAccepted, ProviderID: ptr("p1")}, nil)

	w := do(t, router, jwtSvc, http.MethodPatch, "/api/v1/bookings/b1/accept", "p2", domain.RoleProvider, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_UserCannotAccept(t *testing.T) {
	router, jwtSvc := newRouter(t, newFixture().svc)

	w := do(t, router, jwtSvc, http.MethodPatch, "/api/v1/bookings/b1/accept", "u1", domain.RoleUser, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_PriceRequiresBody(t *testing.T) {
	router, jwtSvc := newRouter(t, newFixture().svc)

	w := do(t, router, jwtSvc, http.MethodPatch, "/api/v1/bookings/b1/price", "p1", domain.RoleProvider, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, jwtSvc, http.MethodPatch, "/api/v1/bookings/b1/price", "p1", domain.RoleProvider, `{"price":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ARGUMENT")
}

func TestHandler_CreateBooking(t *testing.T) {
	f := newFixture()
	router, jwtSvc := newRouter(t, f.svc)
	f.catalog.On("GetService", mock.Anything, "svc-1").Return(&domain.Service{Model: domain.Model{ID: "svc-1"}, Price: 500, CategoryID: "cat-1"}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := do(t, router, jwtSvc, http.MethodPost, "/api/v1/bookings", "u1", domain.RoleUser,
		`{"service_id":"svc-1","date":"2030-01-02T10:00:00Z"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	assert.Contains(t, w.Body.String(), `"provider_id":null`)
}
