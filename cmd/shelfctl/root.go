package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/glose"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/logger"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

// cli 命令共享的状态
// catalog非nil时跳过配置加载（测试中注入）
type cli struct {
	configPath string
	out        io.Writer

	cfg     *config.Config
	catalog shelf.Catalog
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "shelfctl",
		Short:         "浏览Glose用户书架",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "配置文件路径（默认./config/config.yaml）")

	root.AddCommand(
		newShelvesCmd(c),
		newBooksCmd(c),
		newBookCmd(c),
	)

	root.SetOut(c.out)
	root.SetErr(c.out)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return root
}

func (c *cli) setup() error {
	if c.catalog != nil {
		return nil
	}

	// .env.local可选
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}
	// 结果表格输出到stdout，info日志会干扰阅读
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}

	opts := []glose.Option{glose.WithLogger(zl)}
	if cfg.Catalog.Breaker.Enabled {
		opts = append(opts, glose.WithBreaker(glose.NewBreaker(cfg.Catalog.Breaker, zl)))
	}

	c.cfg = cfg
	c.catalog = glose.NewClient(cfg.Catalog, opts...)
	return nil
}

// pageSize 命令行参数优先，其次配置文件
func (c *cli) pageSize(flag int, pick func(config.PaginationConfig) int) int {
	if flag > 0 {
		return flag
	}
	if c.cfg != nil {
		return pick(c.cfg.Pagination)
	}
	return 0
}

// userMessage AppError只显示面向用户的Message
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
