package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmarket/business/orders"
	"shopmarket/domain"
)

type stubOrdersService struct {
	placed    []orders.PlaceOrderInput
	placeErr  error
	order     domain.Order
	getErr    error
	listed    []domain.Order
	listErr   error
	lastRole  string
	lastCusID uint
}

func (s *stubOrdersService) PlaceOrder(ctx context.Context, customerID uint, input orders.PlaceOrderInput) (domain.Order, error) {
	s.lastCusID = customerID
	if s.placeErr != nil {
		return domain.Order{}, s.placeErr
	}
	s.placed = append(s.placed, input)
	return s.order, nil
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID uint64, customerID uint, role string) (domain.Order, error) {
	s.lastCusID, s.lastRole = customerID, role
	if s.getErr != nil {
		return domain.Order{}, s.getErr
	}
	return s.order, nil
}

func (s *stubOrdersService) ListOrders(ctx context.Context, customerID uint, role string) ([]domain.Order, error) {
	s.lastCusID, s.lastRole = customerID, role
	return s.listed, s.listErr
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uint, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c
}

func TestPlaceOrderHandler(t *testing.T) {
	e := echo.New()
	svc := &stubOrdersService{order: domain.Order{
		ID:         1,
		CustomerID: 7,
		TotalPrice: decimal.RequireFromString("25.30"),
	}}
	h := NewOrdersHandler(svc)

	body := `{"full_name":"Dina","shipping_address":"Jl. Kenanga 12","items":[{"product_id":1,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7, "customer")

	require.NoError(t, h.PlaceOrder(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(7), svc.lastCusID)
	require.Len(t, svc.placed, 1)
	assert.Equal(t, "Jl. Kenanga 12", svc.placed[0].ShippingAddress)
	require.Len(t, svc.placed[0].Items, 1)
	assert.Equal(t, uint64(1), svc.placed[0].Items[0].ProductID)
}

func TestPlaceOrderHandlerRejectsBadPayload(t *testing.T) {
	e := echo.New()
	svc := &stubOrdersService{}
	h := NewOrdersHandler(svc)

	cases := []struct {
		name string
		body string
	}{
		{"empty items", `{"shipping_address":"addr","items":[]}`},
		{"missing shipping address", `{"items":[{"product_id":1,"quantity":1}]}`},
		{"zero quantity", `{"shipping_address":"addr","items":[{"product_id":1,"quantity":0}]}`},
		{"malformed json", `{"items":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := authedContext(e, req, rec, 7, "customer")

			require.NoError(t, h.PlaceOrder(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, svc.placed)
}

func TestPlaceOrderHandlerMapsDomainErrors(t *testing.T) {
	e := echo.New()

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: unknown product", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: duplicate line", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		svc := &stubOrdersService{placeErr: tc.err}
		h := NewOrdersHandler(svc)

		body := `{"shipping_address":"addr","items":[{"product_id":1,"quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, 7, "customer")

		require.NoError(t, h.PlaceOrder(c))
		assert.Equal(t, tc.want, rec.Code)
	}
}

func TestGetOrderByIDHandler(t *testing.T) {
	e := echo.New()
	svc := &stubOrdersService{order: domain.Order{ID: 5, CustomerID: 7}}
	h := NewOrdersHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/5", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7, "customer")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.GetOrderByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "customer", svc.lastRole)
}

func TestGetOrderByIDHandlerInvalidID(t *testing.T) {
	e := echo.New()
	h := NewOrdersHandler(&stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7, "customer")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.GetOrderByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderByIDHandlerNotFound(t *testing.T) {
	e := echo.New()
	svc := &stubOrdersService{getErr: fmt.Errorf("%w: order 5", domain.ErrNotFound)}
	h := NewOrdersHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/5", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 8, "customer")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.GetOrderByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersHandlerPassesRole(t *testing.T) {
	e := echo.New()
	svc := &stubOrdersService{listed: []domain.Order{{ID: 1}, {ID: 2}}}
	h := NewOrdersHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 9, "seller")

	require.NoError(t, h.ListOrders(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "seller", svc.lastRole)
	assert.Equal(t, uint(9), svc.lastCusID)
}
