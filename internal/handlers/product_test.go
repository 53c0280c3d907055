// internal/handlers/product_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastra/catalog-backend/internal/services"
	"github.com/vastra/catalog-backend/internal/utils"
)

// The expand endpoint is stateless, so the handler runs against a service
// with no database behind it.
func newExpandRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	pricing := services.NewPricingEngine(2)
	handler := NewProductHandler(services.NewCatalogService(nil, pricing), pricing)

	r := gin.New()
	r.POST("/v1/products/variants/expand", handler.ExpandVariants)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExpandVariantsEndpoint(t *testing.T) {
	r := newExpandRouter()

	w := postJSON(t, r, "/v1/products/variants/expand", gin.H{
		"index": 0,
		"variants": []gin.H{
			{"bulk": true, "sizes": []string{"S", "M", "L"}, "sku": "TSHIRT", "stock": 5},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	variants, ok := data["variants"].([]interface{})
	require.True(t, ok)
	require.Len(t, variants, 3)

	first, ok := variants[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "S", first["size"])
	assert.Equal(t, "TSHIRT-S", first["sku"])
}

func TestExpandVariantsEndpointEmptySizeSet(t *testing.T) {
	r := newExpandRouter()

	w := postJSON(t, r, "/v1/products/variants/expand", gin.H{
		"index": 0,
		"variants": []gin.H{
			{"bulk": true, "sku": "TSHIRT"},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestExpandVariantsEndpointMalformedBody(t *testing.T) {
	r := newExpandRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/products/variants/expand", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
