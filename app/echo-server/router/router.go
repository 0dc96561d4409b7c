package router

import (
	"shopmarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, selfOrSeller echo.MiddlewareFunc, sellerOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrSeller)
	users.GET("", handler.GetAllUsers, authRequired, sellerOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrSeller)
	users.DELETE("/:id", handler.DeleteUser, authRequired, sellerOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, sellerOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, sellerOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, sellerOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, sellerOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, sellerOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, sellerOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, sellerOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, sellerOnly)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", ordersHandler.PlaceOrder)
	orders.GET("", ordersHandler.ListOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)
}

func SetStatsRoutes(api *echo.Group, statsHandler *rest.StatsHandler, authRequired echo.MiddlewareFunc, sellerOnly echo.MiddlewareFunc) {
	stats := api.Group("/stats", authRequired, sellerOnly)
	stats.GET("/top-products", statsHandler.TopProducts)
}
