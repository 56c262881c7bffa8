package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/apper-apps/agencyflowapi/config"
	"github.com/apper-apps/agencyflowapi/internal/embed"
	"github.com/apper-apps/agencyflowapi/internal/handler"
)

func Setup(
	cfg *config.Config,
	formHandler *handler.FormHandler,
	catalogHandler *handler.CatalogHandler,
	builderHandler *handler.BuilderHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		// 通配来源下不能携带凭据
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		formHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)
	}

	// 构建器页面
	builderHandler.RegisterRoutes(r)

	// 静态资源和兜底 404，必须在业务路由之后设置
	embed.SetupRouter(r)

	return r
}
