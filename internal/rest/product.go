package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"shopmarket/business/product"
	"shopmarket/domain"
	"shopmarket/pkg/logger"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) (product.ProductPage, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	CategoryID  uint64 `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Image       string `json:"image"`
}

// ProductListQuery mirrors the supported filter/sort/pagination params of
// the product list endpoint.
type ProductListQuery struct {
	Name         string `query:"name"`
	Description  string `query:"description"`
	Category     uint64 `query:"category"`
	CategoryName string `query:"category_name"`
	Price        string `query:"price"`
	MinPrice     string `query:"min_price"`
	MaxPrice     string `query:"max_price"`
	OrderBy      string `query:"order_by"`
	Desc         bool   `query:"desc"`
	Page         int    `query:"page"`
	PageSize     int    `query:"page_size"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	var q ProductListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	filter := domain.ProductFilter{
		Name:         q.Name,
		Description:  q.Description,
		CategoryID:   q.Category,
		CategoryName: q.CategoryName,
		OrderBy:      q.OrderBy,
		Desc:         q.Desc,
		Page:         q.Page,
		PageSize:     q.PageSize,
	}

	for _, bind := range []struct {
		raw  string
		dest **decimal.Decimal
	}{
		{q.Price, &filter.Price},
		{q.MinPrice, &filter.MinPrice},
		{q.MaxPrice, &filter.MaxPrice},
	} {
		if bind.raw == "" {
			continue
		}
		value, err := decimal.NewFromString(bind.raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid price filter"})
		}
		*bind.dest = &value
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.productService.ListProducts(ctx, filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prod, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		logger.Error("Failed to find product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get product",
		"product": prod,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	prod, err := h.bindProduct(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProduct, err := h.productService.CreateProduct(ctx, prod)
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "product successfully created",
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	prod, bindErr := h.bindProduct(c)
	if bindErr != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: bindErr.Error()})
	}
	prod.ID = productID

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updatedProduct, err := h.productService.UpdateProduct(ctx, prod)
	if err != nil {
		logger.Error("Failed to update product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updatedProduct,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete product", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productID,
	})
}

func (h *ProductHandler) bindProduct(c echo.Context) (*domain.Product, error) {
	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	if err := h.validator.Struct(&req); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, errors.New("invalid price")
	}

	return &domain.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		Image:       req.Image,
	}, nil
}
