package orderControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anquisbarr/fractal-prueba-tecnica/models"
)

func newOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders", GetOrdersHandler(db))
	r.GET("/api/orders/:orderNumber", GetOrderHandler(db))
	r.POST("/api/orders", CreateOrderHandler(db))
	r.PUT("/api/orders/:orderNumber", UpdateOrderHandler(db))
	r.PATCH("/api/orders/:orderNumber/status", UpdateOrderStatusHandler(db))
	r.DELETE("/api/orders/:id", DeleteOrderHandler(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandlers(t *testing.T) {
	t.Run("create returns 201 with the order id", func(t *testing.T) {
		db := setupDB(t)
		product := seedProduct(t, db, "Widget", "5.00", 10)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPost, "/api/orders",
			`{"orderNumber":"ORD-1","productsData":[{"productId":`+itoa(product.ID)+`,"quantity":3}]}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OrderID uint `json:"orderId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotZero(t, resp.OrderID)
	})

	t.Run("create with empty productsData returns 400", func(t *testing.T) {
		db := setupDB(t)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPost, "/api/orders", `{"orderNumber":"ORD-1","productsData":[]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "message")
	})

	t.Run("get serializes money with two decimals", func(t *testing.T) {
		db := setupDB(t)
		product := seedProduct(t, db, "Widget", "5.00", 10)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPost, "/api/orders",
			`{"orderNumber":"ORD-1","productsData":[{"productId":`+itoa(product.ID)+`,"quantity":3}]}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/orders/ORD-1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"finalPrice":"15.00"`)
		assert.Contains(t, w.Body.String(), `"productsData"`)
	})

	t.Run("get unknown order returns 404", func(t *testing.T) {
		db := setupDB(t)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodGet, "/api/orders/NO-SUCH", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list returns headers without lines", func(t *testing.T) {
		db := setupDB(t)
		product := seedProduct(t, db, "Widget", "5.00", 10)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPost, "/api/orders",
			`{"orderNumber":"ORD-1","productsData":[{"productId":`+itoa(product.ID)+`,"quantity":1}]}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/orders", "")
		require.Equal(t, http.StatusOK, w.Code)

		var orders []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		assert.NotContains(t, orders[0], "productsData")
	})

	t.Run("update unknown order returns 404", func(t *testing.T) {
		db := setupDB(t)
		product := seedProduct(t, db, "Widget", "5.00", 10)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPut, "/api/orders/NO-SUCH",
			`{"productsData":[{"productId":`+itoa(product.ID)+`,"quantity":1}]}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid status returns 400", func(t *testing.T) {
		db := setupDB(t)
		product := seedProduct(t, db, "Widget", "5.00", 10)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPost, "/api/orders",
			`{"orderNumber":"ORD-1","productsData":[{"productId":`+itoa(product.ID)+`,"quantity":1}]}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPatch, "/api/orders/ORD-1/status", `{"status":"Shipped"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete removes the order", func(t *testing.T) {
		db := setupDB(t)
		product := seedProduct(t, db, "Widget", "5.00", 10)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodPost, "/api/orders",
			`{"orderNumber":"ORD-1","productsData":[{"productId":`+itoa(product.ID)+`,"quantity":3}]}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OrderID uint `json:"orderId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		w = doJSON(t, r, http.MethodDelete, "/api/orders/"+itoa(resp.OrderID), "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/orders/ORD-1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Zero(t, countRows(t, db, &models.OrderProduct{}))
	})

	t.Run("delete with a non-numeric id returns 400", func(t *testing.T) {
		db := setupDB(t)
		r := newOrderRouter(db)

		w := doJSON(t, r, http.MethodDelete, "/api/orders/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
