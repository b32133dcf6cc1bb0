package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/navid-fn/feeboard/internal/handler"
)

type Config struct {
	FeeHandler       *handler.FeeHandler
	ThemeHandler     *handler.ThemeHandler
	DashboardHandler *handler.DashboardHandler

	// ThemeSession attaches the theme provider to theme-aware routes.
	ThemeSession gin.HandlerFunc

	Logger  logrus.FieldLogger
	Limiter *rate.Limiter
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger))
	if cfg.Limiter != nil {
		router.Use(RateLimit(cfg.Limiter))
	}
	router.SetHTMLTemplate(handler.Templates())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerDashboardRoutes(router, cfg.ThemeSession, cfg.DashboardHandler, cfg.ThemeHandler)

	api := router.Group("/v1/")
	registerFeeRoutes(api, cfg.FeeHandler)
	registerThemeRoutes(api, cfg.ThemeSession, cfg.ThemeHandler)

	return router
}
