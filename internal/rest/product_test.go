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

	"shopmarket/business/product"
	"shopmarket/domain"
)

type stubProductService struct {
	page       product.ProductPage
	lastFilter domain.ProductFilter
	created    *domain.Product
	err        error
}

func (s *stubProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) (product.ProductPage, error) {
	s.lastFilter = filter
	return s.page, s.err
}

func (s *stubProductService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: id}, nil
}

func (s *stubProductService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p.ID = 1
	s.created = p
	return p, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = p
	return p, nil
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id uint64) error {
	return s.err
}

func TestListProductsHandlerParsesFilter(t *testing.T) {
	e := echo.New()
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	query := "name=beans&category=3&min_price=5.50&max_price=20&order_by=price&desc=true&page=2&page_size=5"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?"+query, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ListProducts(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	f := svc.lastFilter
	assert.Equal(t, "beans", f.Name)
	assert.Equal(t, uint64(3), f.CategoryID)
	require.NotNil(t, f.MinPrice)
	assert.True(t, f.MinPrice.Equal(decimal.RequireFromString("5.50")))
	require.NotNil(t, f.MaxPrice)
	assert.True(t, f.MaxPrice.Equal(decimal.RequireFromString("20")))
	assert.Nil(t, f.Price)
	assert.Equal(t, "price", f.OrderBy)
	assert.True(t, f.Desc)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.PageSize)
}

func TestListProductsHandlerRejectsBadPriceFilter(t *testing.T) {
	e := echo.New()
	h := NewProductHandler(&stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=cheap", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ListProducts(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsHandlerRejectsUnknownOrdering(t *testing.T) {
	e := echo.New()
	svc := &stubProductService{err: fmt.Errorf("%w: unsupported ordering", domain.ErrValidation)}
	h := NewProductHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?order_by=stock", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ListProducts(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductHandler(t *testing.T) {
	e := echo.New()
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	body := `{"category_id":1,"name":"Espresso Beans","price":"12.50","stock":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateProduct(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.True(t, svc.created.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestCreateProductHandlerRejectsBadPrice(t *testing.T) {
	e := echo.New()
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	for _, body := range []string{
		`{"category_id":1,"name":"Beans","price":"twelve","stock":1}`,
		`{"category_id":1,"name":"Beans","stock":1}`,
		`{"name":"Beans","price":"1.00"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.CreateProduct(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}

	assert.Nil(t, svc.created)
}

func TestUpdateProductHandlerSetsIDFromPath(t *testing.T) {
	e := echo.New()
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	body := `{"category_id":1,"name":"Beans","price":"15.00","stock":3}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/9", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.UpdateProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, uint64(9), svc.created.ID)
}

func TestDeleteProductHandlerMapsNotFound(t *testing.T) {
	e := echo.New()
	svc := &stubProductService{err: fmt.Errorf("%w: product 9", domain.ErrNotFound)}
	h := NewProductHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.DeleteProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
