package routes

import (
	"webcharge_api/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathAPI     = "/api/v1"
	PathPayment = "/payment"
	PathAdmin   = "/admin"
)

func addWebStoreRoutes(rg *gin.RouterGroup, h Handlers) {
	bearer := middleware.RequireBearer(h.Tokens)

	// Public pages of the web store.
	rg.POST("/token", h.Auth.Token)
	rg.GET("/login", h.Store.Login)
	rg.POST("/store/items", h.Store.StoreItems)
	rg.POST("/orders/history", h.Store.OrderHistory)

	rg.POST("/refresh", bearer, h.Store.Refresh)

	payment := rg.Group(PathPayment, bearer)
	{
		payment.POST("/success", h.Payment.PaymentSuccess)
		payment.POST("/failure", h.Payment.PaymentFailure)
	}

	admin := rg.Group(PathAdmin, bearer)
	{
		admin.GET("/grants/pending", h.Payment.PendingGrants)
		admin.POST("/grants/:order_id/retry", h.Payment.RetryGrant)
	}
}
