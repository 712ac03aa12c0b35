package routes

import (
	"log"
	"net/http"

	"webcharge_api/internal/adapter/http/handlers"
	"webcharge_api/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP entry points the router mounts.
type Handlers struct {
	Payment *handlers.PaymentHandler
	Store   *handlers.StoreHandler
	Auth    *handlers.AuthHandler
	Tokens  middleware.ITokenVerifier
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	api := router.Group(PathAPI)
	addWebStoreRoutes(api, h)
	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
