package embed

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// StylesheetPath 构建器页面引用的样式表地址
const StylesheetPath = "/assets/builder.css"

//go:embed static/*
var embeddedFiles embed.FS

// GetAssetsFS 获取嵌入的静态资源
func GetAssetsFS() fs.FS {
	assets, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		// static 目录随二进制嵌入，不会缺失
		panic(err)
	}
	return assets
}

// SetupRouter 设置静态资源路由和兜底 404
func SetupRouter(r *gin.Engine) {
	r.GET("/assets/*filepath", gin.WrapH(http.StripPrefix("/assets", http.FileServer(http.FS(GetAssetsFS())))))

	r.NoRoute(func(c *gin.Context) {
		// API 请求返回 JSON
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})
}
