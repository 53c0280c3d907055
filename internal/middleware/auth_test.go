// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastra/catalog-backend/internal/models"
	"github.com/vastra/catalog-backend/internal/utils"
)

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append([]gin.HandlerFunc{AuthRequired()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		actor, ok := utils.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no actor in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": actor.Username, "role": string(actor.Role)})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredWithValidToken(t *testing.T) {
	r := newAuthRouter()

	token, err := utils.GenerateJWT(uuid.New(), "threadworks", string(models.UserRoleVendor), 1)
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "threadworks")
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	r := newAuthRouter()

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	r := newAuthRouter()

	w := doGet(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequired(t *testing.T) {
	r := newAuthRouter(AdminRequired())

	vendorToken, err := utils.GenerateJWT(uuid.New(), "threadworks", string(models.UserRoleVendor), 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doGet(r, vendorToken).Code)

	adminToken, err := utils.GenerateJWT(uuid.New(), "moderator", string(models.UserRoleAdmin), 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(r, adminToken).Code)
}

func TestOptionalAuthPassesThroughAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", OptionalAuth(), func(c *gin.Context) {
		_, ok := utils.ActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
