package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

type MiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	api := s.router.Group("/api", AuthMiddleware(testSecret))
	api.GET("/whoami", func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	api.GET("/admin", RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func (s *MiddlewareTestSuite) do(path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *MiddlewareTestSuite) token(role string) string {
	tok, err := utils.GenerateJWT("user-1", role, testSecret, time.Hour, "test")
	s.Require().NoError(err)
	return "Bearer " + tok
}

func (s *MiddlewareTestSuite) TestMissingTokenIsUnauthorized() {
	rec := s.do("/api/whoami", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"message":"Access denied. No token provided."}`, rec.Body.String())

	rec = s.do("/api/whoami", "Token abc")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *MiddlewareTestSuite) TestInvalidTokenIsForbidden() {
	rec := s.do("/api/whoami", "Bearer not-a-jwt")
	s.Equal(http.StatusForbidden, rec.Code)
	s.JSONEq(`{"message":"Invalid token."}`, rec.Body.String())

	forged, err := utils.GenerateJWT("user-1", "ADMIN", "other-secret", time.Hour, "test")
	s.Require().NoError(err)
	s.Equal(http.StatusForbidden, s.do("/api/whoami", "Bearer "+forged).Code)

	s.Equal(http.StatusForbidden, s.do("/api/whoami", s.token("SUPERUSER")).Code)
}

func (s *MiddlewareTestSuite) TestValidTokenSetsPrincipal() {
	rec := s.do("/api/whoami", s.token("USER"))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"userId":"user-1","role":"USER"}`, rec.Body.String())
}

func (s *MiddlewareTestSuite) TestRequireRole() {
	s.Equal(http.StatusForbidden, s.do("/api/admin", s.token("USER")).Code)
	s.Equal(http.StatusNoContent, s.do("/api/admin", s.token("ADMIN")).Code)
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func TestRateLimit_MemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := NewRateLimiter("2-M", nil)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewRateLimiter("five per minute", nil)
	assert.Error(t, err)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Timeout(time.Second), func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

type recordingObserver struct {
	route  string
	status int
}

func (o *recordingObserver) ObserveHTTP(_ string, route string, status int, _ time.Duration) {
	o.route, o.status = route, status
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/api/parking/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parking/abc", nil))
	assert.Equal(t, "/api/parking/:id", obs.route)
	assert.Equal(t, http.StatusNotFound, obs.status)
}
