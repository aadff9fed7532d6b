package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 使用Viper管理：YAML文件（可选）+ 默认值 + 环境变量覆盖
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CatalogConfig 远程目录服务（Glose）客户端配置
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	UserID            string        `mapstructure:"user_id"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxAttempts       int           `mapstructure:"max_attempts"`        // 总尝试次数（含首次）
	BackoffUnit       time.Duration `mapstructure:"backoff_unit"`        // 第n次失败后等待 n*BackoffUnit
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0表示不限速
	MaxConcurrency    int           `mapstructure:"max_concurrency"`     // 批量详情查询并发上限，0表示不限
	Breaker           BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig 熔断器配置
type BreakerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

// PaginationConfig 两个分页实例的每页数量
type PaginationConfig struct {
	ShelfPageSize int `mapstructure:"shelf_page_size"`
	BookPageSize  int `mapstructure:"book_page_size"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig 图书详情缓存（Redis）
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	DetailTTL time.Duration `mapstructure:"detail_ttl"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP gRPC host:port
}

// EnvPrefix 环境变量前缀，如SHELFVIEWER_CATALOG_USER_ID → catalog.user_id
const EnvPrefix = "SHELFVIEWER"

// Load 加载配置
// 1. 默认加载./config/config.yaml或./config.yaml（不存在时只使用默认值）
// 2. 通过环境变量SHELFVIEWER_ENV指定环境（如config.prod.yaml）
// 3. 环境变量覆盖
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile 从指定文件加载配置，path为空时按默认路径查找
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if env := v.GetString("env"); env != "" {
			v.SetConfigName("config." + env)
		}
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("catalog.base_url", "https://api.glose.com")
	v.SetDefault("catalog.user_id", "5a8411b53ed02c04187ff02a")
	v.SetDefault("catalog.user_agent", "shelfviewer/1.0")
	v.SetDefault("catalog.timeout", 15*time.Second)
	v.SetDefault("catalog.max_attempts", 3)
	v.SetDefault("catalog.backoff_unit", time.Second)
	v.SetDefault("catalog.requests_per_second", 0)
	v.SetDefault("catalog.max_concurrency", 8)
	v.SetDefault("catalog.breaker.enabled", false)
	v.SetDefault("catalog.breaker.max_requests", 1)
	v.SetDefault("catalog.breaker.interval", 60*time.Second)
	v.SetDefault("catalog.breaker.timeout", 30*time.Second)
	v.SetDefault("catalog.breaker.consecutive_failures", 5)

	v.SetDefault("pagination.shelf_page_size", 20)
	v.SetDefault("pagination.book_page_size", 12)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.detail_ttl", 10*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "shelfviewer")
	v.SetDefault("tracing.endpoint", "localhost:4317")
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	u, err := url.Parse(cfg.Catalog.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("无效的目录服务地址: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.UserID == "" {
		return fmt.Errorf("catalog.user_id不能为空")
	}
	if cfg.Catalog.MaxAttempts < 1 {
		return fmt.Errorf("catalog.max_attempts必须>=1: %d", cfg.Catalog.MaxAttempts)
	}
	if cfg.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("catalog.requests_per_second不能为负数")
	}

	if cfg.Pagination.ShelfPageSize < 1 || cfg.Pagination.BookPageSize < 1 {
		return fmt.Errorf("每页数量必须>=1")
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("无效的日志格式: %s", cfg.Log.Format)
	}

	return nil
}
