//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go后，main.go中的buildEngine可替换为InitializeApp

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
)

// InitializeApp 组装整个应用，返回的cleanup负责关闭Redis连接
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		catalogSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
