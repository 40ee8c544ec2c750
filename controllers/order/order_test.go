package orderControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

type stubService struct {
	createOrder *models.Order
	createErr   error

	gotLines []models.CartLine
	gotTotal decimal.Decimal
	gotUser  string

	statusErr error
}

func (s *stubService) Create(_ context.Context, userRef string, lines []models.CartLine, total decimal.Decimal) (*models.Order, error) {
	s.gotUser = userRef
	s.gotLines = lines
	s.gotTotal = total
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createOrder, nil
}

func (s *stubService) GetForUser(context.Context, string, string) (*models.Order, error) {
	return nil, errs.ErrNotFound
}
func (s *stubService) ListForUser(context.Context, string) ([]models.Order, error) {
	return nil, nil
}
func (s *stubService) ListAll(context.Context) ([]models.Order, error) { return nil, nil }
func (s *stubService) UpdateStatus(_ context.Context, _ string, _ models.OrderStatus) error {
	return s.statusErr
}

func identity(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func placeOrder(t *testing.T, svc OrderService, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", identity(userID), PlaceOrderHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc := &stubService{createOrder: &models.Order{ID: "o1", UserRef: "u1"}}

	w := placeOrder(t, svc, "u1", `{"cart":[{"product_id":"1","quantity":2}],"total":3.60}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order"`)
	assert.Equal(t, "u1", svc.gotUser)
	assert.Equal(t, []models.CartLine{{ProductID: "1", Quantity: 2}}, svc.gotLines)
	assert.True(t, svc.gotTotal.Equal(decimal.NewFromFloat(3.60)))
}

func TestPlaceOrderUnauthenticated(t *testing.T) {
	svc := &stubService{}
	w := placeOrder(t, svc, "", `{"cart":[{"product_id":"1","quantity":2}],"total":3.60}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := &stubService{createErr: errs.Validation("cart is empty")}
	w := placeOrder(t, svc, "u1", `{"cart":[],"total":3.60}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestPlaceOrderInsufficientStockNamesProduct(t *testing.T) {
	svc := &stubService{createErr: &errs.StockError{ProductID: "2", Name: "Pears"}}

	w := placeOrder(t, svc, "u1", `{"cart":[{"product_id":"2","quantity":1}],"total":2.00}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Pears")
}

func TestPlaceOrderPersistenceFailure(t *testing.T) {
	svc := &stubService{createErr: errs.ErrUpdateFailed}
	w := placeOrder(t, svc, "u1", `{"cart":[{"product_id":"1","quantity":1}],"total":2.00}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/admin/orders/:id/status", UpdateOrderStatusHandler(&stubService{}))

	req := httptest.NewRequest(http.MethodPut, "/admin/orders/o1/status", strings.NewReader(`{"status":"teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/admin/orders/:id/status", UpdateOrderStatusHandler(&stubService{statusErr: errs.ErrNotFound}))

	req := httptest.NewRequest(http.MethodPut, "/admin/orders/o1/status", strings.NewReader(`{"status":"Shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
