package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/shelfviewer/internal/application/browse"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/glose"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shelfviewer/internal/interface/http/handler"
	"github.com/xiebiao/shelfviewer/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets
// ========================================
// main.go手动按同样的顺序调用这些Provider；wire.go中的Injector供`wire gen ./cmd/api`使用

// catalogSet 目录服务客户端（含可选的Redis详情缓存）
var catalogSet = wire.NewSet(
	provideDetailCache,
	provideCatalogClient,
	wire.Bind(new(shelf.Catalog), new(*glose.Client)),
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	provideListShelvesUseCase,
	provideListShelfBooksUseCase,
	browse.NewGetBookUseCase,
)

// interfaceSet HTTP处理器和路由
var interfaceSet = wire.NewSet(
	handler.NewShelfHandler,
	handler.NewBookHandler,
	router.NewEngine,
)

// provideDetailCache 缓存未启用时返回nil
func provideDetailCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (glose.DetailCache, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}
	return redis.NewBookCache(client, cfg.Cache.DetailTTL), cleanup, nil
}

func provideCatalogClient(cfg *config.Config, logger *zap.Logger, cache glose.DetailCache) *glose.Client {
	opts := []glose.Option{glose.WithLogger(logger.Named("glose"))}
	if cfg.Catalog.Breaker.Enabled {
		opts = append(opts, glose.WithBreaker(glose.NewBreaker(cfg.Catalog.Breaker, logger)))
	}
	if cache != nil {
		opts = append(opts, glose.WithCache(cache))
	}
	return glose.NewClient(cfg.Catalog, opts...)
}

func provideListShelvesUseCase(catalog shelf.Catalog, cfg *config.Config) *browse.ListShelvesUseCase {
	return browse.NewListShelvesUseCase(catalog, cfg.Pagination.ShelfPageSize)
}

func provideListShelfBooksUseCase(catalog shelf.Catalog, cfg *config.Config) *browse.ListShelfBooksUseCase {
	return browse.NewListShelfBooksUseCase(catalog, cfg.Pagination.BookPageSize)
}
