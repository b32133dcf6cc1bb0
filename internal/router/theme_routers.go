package router

import (
	"github.com/gin-gonic/gin"

	"github.com/navid-fn/feeboard/internal/handler"
)

func registerThemeRoutes(router *gin.RouterGroup, session gin.HandlerFunc, themeHandler *handler.ThemeHandler) {
	theme := router.Group("/theme", session)
	{
		theme.GET("", themeHandler.GetTheme)
		theme.PUT("", themeHandler.PutTheme)
	}
}

func registerDashboardRoutes(router *gin.Engine, session gin.HandlerFunc, dashboardHandler *handler.DashboardHandler, themeHandler *handler.ThemeHandler) {
	pages := router.Group("/", session)
	{
		pages.GET("", dashboardHandler.Index)
		pages.POST("/theme", themeHandler.PostThemeForm)
	}
}
