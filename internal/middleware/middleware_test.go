package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/repositories"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "hostelsphere",
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var body struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("assign: %w", apperrors.ErrRoomFull), http.StatusConflict, dto.ErrorCodeRoomFull},
		{apperrors.ErrRoomUnderMaintenance, http.StatusConflict, dto.ErrorCodeRoomMaintenance},
		{apperrors.ErrDuplicateSID, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.NewConflictError("already decided"), http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrInvalidCapacity, http.StatusBadRequest, dto.ErrorCodeInvalidCapacity},
		{apperrors.NewValidationError("bad phone"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{fmt.Errorf("%w: disk full", repositories.ErrStorageUnavailable), http.StatusServiceUnavailable, dto.ErrorCodeDatabaseError},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
}

func TestHandleAPIErrorHidesServerDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "password authentication")
}

func newAuthRouter(m *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/admin", m.JWTAuth(), m.RoleRequired(auth.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, GetSubject(c))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT()
	r := newAuthRouter(NewAuthMiddleware(jwtService))

	adminToken, _, err := jwtService.GenerateAccessToken("warden", auth.RoleAdmin, "Warden")
	require.NoError(t, err)
	studentToken, _, err := jwtService.GenerateAccessToken("student-1", auth.RoleStudent, "Asha")
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Code)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+studentToken)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Code)
	})

	t.Run("admin header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "warden", w.Body.String())
	})

	t.Run("admin query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?token="+adminToken, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type loginBody struct {
	Username string `json:"username" binding:"required"`
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body loginBody
		if !BindJSON(c, &body) {
			return
		}
		c.String(http.StatusOK, body.Username)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"warden"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "warden", w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
