package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmarket/pkg/utils"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func doAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := AuthMiddleware()(okHandler)(c)
	require.NoError(t, err)
	return rec, c
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	utils.InitJWT("test-secret")
	token, err := utils.GenerateJWT("42", "seller")
	require.NoError(t, err)

	rec, c := doAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), c.Get("user_id"))
	assert.Equal(t, "seller", c.Get("role"))
	assert.Equal(t, token, c.Get("token"))
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	utils.InitJWT("test-secret")

	rec, _ := doAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	utils.InitJWT("test-secret")

	for _, header := range []string{"Bearer", "Basic abc", "abc"} {
		rec, _ := doAuth(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	utils.InitJWT("test-secret")

	rec, _ := doAuth(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func sellerOnlyRequest(t *testing.T, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	require.NoError(t, SellerOnly()(okHandler)(c))
	return rec
}

func TestSellerOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, sellerOnlyRequest(t, "seller").Code)
	assert.Equal(t, http.StatusOK, sellerOnlyRequest(t, "SELLER").Code)
	assert.Equal(t, http.StatusForbidden, sellerOnlyRequest(t, "customer").Code)
	assert.Equal(t, http.StatusForbidden, sellerOnlyRequest(t, nil).Code)
}

func selfOrSellerRequest(t *testing.T, userID uint, role, paramID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)
	c.SetParamNames("id")
	c.SetParamValues(paramID)

	require.NoError(t, SelfOrSeller()(okHandler)(c))
	return rec
}

func TestSelfOrSeller(t *testing.T) {
	assert.Equal(t, http.StatusOK, selfOrSellerRequest(t, 7, "customer", "7").Code)
	assert.Equal(t, http.StatusForbidden, selfOrSellerRequest(t, 7, "customer", "8").Code)
	assert.Equal(t, http.StatusOK, selfOrSellerRequest(t, 7, "seller", "8").Code)
	assert.Equal(t, http.StatusBadRequest, selfOrSellerRequest(t, 7, "customer", "abc").Code)
}
