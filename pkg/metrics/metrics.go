// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三组：
//   - 目录服务调用：请求数、耗时、重试、占位值、缓存命中
//   - HTTP接口：请求数、耗时、处理中请求数
//   - 熔断器：状态
//
// 未调用InitMetrics时，所有记录函数都是空操作，便于在单元测试中直接使用客户端。
//
// 使用示例：
//
//	metrics.InitMetrics()
//	http.Handle("/metrics", promhttp.Handler())
//
//	start := time.Now()
//	body, err := fetch()
//	metrics.ObserveCatalogRequest("forms", metrics.ResultOf(err, false), time.Since(start))
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// CatalogRequestsTotal 目录服务HTTP尝试总数（Counter）
	// 标签：endpoint（shelves/shelf_forms/form）、result（success/not_found/error）
	CatalogRequestsTotal *prometheus.CounterVec

	// CatalogRequestDuration 单次尝试耗时（Histogram）
	CatalogRequestDuration *prometheus.HistogramVec

	// CatalogRetriesTotal 重试次数（不含首次尝试）
	CatalogRetriesTotal *prometheus.CounterVec

	// CatalogPlaceholdersTotal 客户端生成的占位值数量
	// 标签：field（rating/price/unavailable）
	CatalogPlaceholdersTotal *prometheus.CounterVec

	// BookCacheResults 详情缓存结果
	// 标签：result（hit/miss/error）
	BookCacheResults *prometheus.CounterVec

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec
)

// 结果标签取值
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// ResultOf 将错误映射为result标签值
// notFound由调用方判断，避免本包依赖错误定义
func ResultOf(err error, notFound bool) string {
	switch {
	case err == nil:
		return ResultSuccess
	case notFound:
		return ResultNotFound
	default:
		return ResultError
	}
}

// InitMetrics 注册所有指标到默认Registry，重复调用无副作用
func InitMetrics() {
	initOnce.Do(func() {
		CatalogRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_requests_total",
				Help: "目录服务HTTP请求尝试总数",
			},
			[]string{"endpoint", "result"},
		)

		CatalogRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "catalog_request_duration_seconds",
				Help: "目录服务单次请求耗时（秒）",
				// 上游为公网API，桶从10ms到15s（客户端超时）
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
			},
			[]string{"endpoint"},
		)

		CatalogRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_retries_total",
				Help: "目录服务重试次数",
			},
			[]string{"endpoint"},
		)

		CatalogPlaceholdersTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_placeholders_total",
				Help: "客户端生成的占位值数量",
			},
			[]string{"field"},
		)

		BookCacheResults = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_results_total",
				Help: "图书详情缓存查询结果",
			},
			[]string{"result"},
		)

		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)
	})
}

// ObserveCatalogRequest 记录一次目录服务请求尝试
func ObserveCatalogRequest(endpoint, result string, d time.Duration) {
	if CatalogRequestsTotal == nil {
		return
	}
	CatalogRequestsTotal.WithLabelValues(endpoint, result).Inc()
	CatalogRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncCatalogRetry 记录一次重试
func IncCatalogRetry(endpoint string) {
	if CatalogRetriesTotal == nil {
		return
	}
	CatalogRetriesTotal.WithLabelValues(endpoint).Inc()
}

// IncPlaceholder 记录一次占位值生成
func IncPlaceholder(field string) {
	if CatalogPlaceholdersTotal == nil {
		return
	}
	CatalogPlaceholdersTotal.WithLabelValues(field).Inc()
}

// IncBookCache 记录一次缓存查询结果
func IncBookCache(result string) {
	if BookCacheResults == nil {
		return
	}
	BookCacheResults.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path, status string, d time.Duration) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// TrackInProgress 处理中请求数+1，返回的函数用于-1
func TrackInProgress() func() {
	if HTTPRequestsInProgress == nil {
		return func() {}
	}
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// SetBreakerState 更新熔断器状态
func SetBreakerState(name string, state float64) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(state)
}
