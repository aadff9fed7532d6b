// Package glose 实现远程图书目录服务（Glose API）的客户端
//
// 所有请求都经过同一个带重试的fetch：限速 → 熔断 → HTTP GET → 校验JSON。
// 失败的尝试之间线性退避（BackoffUnit × 已失败次数），404同样会消耗重试次数。
package glose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
	"github.com/xiebiao/shelfviewer/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
	"github.com/xiebiao/shelfviewer/pkg/metrics"
	"github.com/xiebiao/shelfviewer/pkg/tracing"
)

const tracerName = "glose"

// 指标和Span使用的endpoint名称
const (
	endpointShelves    = "shelves"
	endpointShelfForms = "shelf_forms"
	endpointForm       = "form"
)

// Client Glose目录客户端，实现shelf.Catalog
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userID         string
	userAgent      string
	maxAttempts    int
	backoffUnit    time.Duration
	maxConcurrency int

	limiter  *rate.Limiter
	breaker  *circuitbreaker.CircuitBreaker
	cache    DetailCache
	enricher *book.Enricher
	logger   *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

var _ shelf.Catalog = (*Client)(nil)

// Option 客户端可选配置
type Option func(*Client)

// WithHTTPClient 替换底层http.Client（测试中指向httptest.Server）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreaker 在每次尝试外包一层熔断器
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithCache 启用图书详情的读穿缓存
func WithCache(cache DetailCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithEnricher 替换占位值生成器（测试中使用固定随机源）
func WithEnricher(e *book.Enricher) Option {
	return func(c *Client) { c.enricher = e }
}

// WithLogger 设置日志
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient 根据配置创建客户端
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userID:         cfg.UserID,
		userAgent:      cfg.UserAgent,
		maxAttempts:    cfg.MaxAttempts,
		backoffUnit:    cfg.BackoffUnit,
		maxConcurrency: cfg.MaxConcurrency,
		logger:         zap.NewNop(),
		sleep:          sleepContext,
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.enricher == nil {
		c.enricher = book.NewEnricher(nil)
	}
	return c
}

// NewBreaker 按配置创建目录服务熔断器，404不计为失败，状态变化写入指标
func NewBreaker(cfg config.BreakerConfig, logger *zap.Logger) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker("glose", circuitbreaker.Config{
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.ConsecutiveFailures),
		IsSuccessful: func(err error) bool {
			return err == nil || apperrors.IsNotFound(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetBreakerState(name, float64(to))
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
}

// buildURL 拼接查询参数，offset在limit之前，未提供的参数不发送
func (c *Client) buildURL(path string, params shelf.PaginationParams) string {
	var query []string
	if params.Offset != nil {
		query = append(query, "offset="+strconv.Itoa(*params.Offset))
	}
	if params.Limit != nil {
		query = append(query, "limit="+strconv.Itoa(*params.Limit))
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + strings.Join(query, "&")
	}
	return u
}

// fetch 带重试的GET，返回合法的JSON响应体
// 最后一次失败的错误原样返回
func (c *Client) fetch(ctx context.Context, endpoint, url string) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.attempt(ctx, endpoint, url, attempt)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == c.maxAttempts {
			return nil, lastErr
		}

		c.logger.Debug("catalog request failed, retrying",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		metrics.IncCatalogRetry(endpoint)
		if err := c.sleep(ctx, c.backoffUnit*time.Duration(attempt)); err != nil {
			return nil, err
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, apperrors.ErrMaxRetriesExceeded
}

// attempt 单次尝试：限速、熔断、请求
func (c *Client) attempt(ctx context.Context, endpoint, url string, n int) (body json.RawMessage, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GET "+endpoint)
	span.SetAttributes(
		attribute.String("http.url", url),
		attribute.Int("catalog.attempt", n),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveCatalogRequest(endpoint, metrics.ResultOf(err, apperrors.IsNotFound(err)), time.Since(start))
		tracing.EndSpan(span, err)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if c.breaker == nil {
		return c.do(ctx, url)
	}

	err = c.breaker.Execute(func() error {
		var doErr error
		body, doErr = c.do(ctx, url)
		return doErr
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil, apperrors.New(apperrors.ErrCodeCircuitOpen, "circuit breaker is open")
	}
	return body, err
}

func (c *Client) do(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "catalog request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.NotFound()
		}
		return nil, apperrors.NewWithStatus(apperrors.ErrCodeUpstreamHTTP, resp.StatusCode,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "read response")
	}
	if !json.Valid(body) {
		return nil, apperrors.New(apperrors.ErrCodeUpstreamDecode, "invalid JSON response")
	}
	return body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
