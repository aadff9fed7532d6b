package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
	"github.com/xiebiao/shelfviewer/internal/interface/http/handler"
	"github.com/xiebiao/shelfviewer/internal/interface/http/middleware"
	"github.com/xiebiao/shelfviewer/pkg/response"
)

// NewEngine 创建Gin引擎并注册全部路由
//
//	GET /ping                        健康检查
//	GET /metrics                     Prometheus指标
//	GET /swagger/*any                API文档
//	GET /api/v1/shelves              书架列表
//	GET /api/v1/shelves/:id/books    书架图书（支持过滤）
//	GET /api/v1/books/:id            图书详情
func NewEngine(
	cfg *config.Config,
	logger *zap.Logger,
	shelfHandler *handler.ShelfHandler,
	bookHandler *handler.BookHandler,
) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(cfg.Tracing.ServiceName),
		middleware.AccessLog(logger),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		shelves := v1.Group("/shelves")
		{
			shelves.GET("", shelfHandler.ListShelves)
			shelves.GET("/:id/books", shelfHandler.ListShelfBooks)
		}

		books := v1.Group("/books")
		{
			books.GET("/:id", bookHandler.GetBook)
		}
	}

	return r
}
