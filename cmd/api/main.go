package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xiebiao/shelfviewer/internal/application/browse"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/logger"
	"github.com/xiebiao/shelfviewer/internal/interface/http/handler"
	"github.com/xiebiao/shelfviewer/internal/interface/http/router"
	"github.com/xiebiao/shelfviewer/pkg/metrics"
	"github.com/xiebiao/shelfviewer/pkg/tracing"
)

// @title        shelfviewer API
// @version      1.0
// @description  书架浏览服务：查询Glose用户书架、书架图书和图书详情
// @BasePath     /
func main() {
	// .env.local可选，只用于本地开发
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadFile(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("初始化追踪失败: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zl.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	engine, cleanup, err := buildEngine(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("catalog", cfg.Catalog.BaseURL),
			zap.Bool("cache", cfg.Cache.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildEngine 手动依赖注入，与wire.go中InitializeApp的组装顺序一致
// DetailCache ← glose.Client ← UseCase ← Handler ← Engine
func buildEngine(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*gin.Engine, func(), error) {
	cache, cleanup, err := provideDetailCache(ctx, cfg, zl)
	if err != nil {
		return nil, nil, err
	}

	client := provideCatalogClient(cfg, zl, cache)

	listShelves := provideListShelvesUseCase(client, cfg)
	listShelfBooks := provideListShelfBooksUseCase(client, cfg)
	getBook := browse.NewGetBookUseCase(client)

	shelfHandler := handler.NewShelfHandler(listShelves, listShelfBooks)
	bookHandler := handler.NewBookHandler(getBook)

	return router.NewEngine(cfg, zl, shelfHandler, bookHandler), cleanup, nil
}
