package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/handlers"
	"github.com/mzhuravlev/shopcourse/internal/middleware"
	"github.com/mzhuravlev/shopcourse/internal/observability"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
)

type ShopRouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	Items       *handlers.ItemHandler
	Carts       *handlers.CartHandler
	CORSOrigins []string
}

func NewShopRouter(cfg ShopRouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Log),
		middleware.Metrics(cfg.Metrics),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	router.POST("/item", cfg.Items.Create)
	router.GET("/item/:id", cfg.Items.Get)
	router.GET("/item", cfg.Items.List)
	router.PUT("/item/:id", cfg.Items.Replace)
	router.PATCH("/item/:id", cfg.Items.Patch)
	router.DELETE("/item/:id", cfg.Items.Delete)

	router.POST("/cart", cfg.Carts.Create)
	router.GET("/cart/:id", cfg.Carts.Get)
	router.GET("/cart", cfg.Carts.List)
	router.POST("/cart/:id/add/:item_id", cfg.Carts.AddItem)

	return router
}

type UserRouterConfig struct {
	Log         *logger.Logger
	Auth        *middleware.Auth
	Users       *handlers.UserHandler
	CORSOrigins []string
}

func NewUserRouter(cfg UserRouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Log),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/user-register", cfg.Users.Register)

	authed := router.Group("/", cfg.Auth.RequireAuthor())
	authed.POST("/user-get", cfg.Users.Get)

	admin := router.Group("/", cfg.Auth.RequireAuthor(), cfg.Auth.RequireAdmin())
	admin.POST("/user-promote", cfg.Users.Promote)
	admin.PUT("/user-promote", cfg.Users.Promote)

	return router
}

type CalcRouterConfig struct {
	Log  *logger.Logger
	Calc *handlers.CalcHandler
}

// NewCalcRouter answers unknown routes and wrong verbs with plain-text
// "404 Not Found" / "405 Method Not Allowed" bodies.
func NewCalcRouter(cfg CalcRouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Log),
	)
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 Not Found")
	})
	router.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "405 Method Not Allowed")
	})

	router.GET("/factorial", cfg.Calc.Factorial)
	router.GET("/fibonacci/:n", cfg.Calc.Fibonacci)
	router.POST("/mean", cfg.Calc.Mean)

	return router
}
