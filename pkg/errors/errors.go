package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 1. Code用于调用方判断错误类型
// 2. Message是面向用户的提示信息（已本地化）
// 3. Status是上游HTTP状态码（可选，0表示未知）
// 4. Err是内部错误，仅记录到日志
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewWithStatus 创建携带上游HTTP状态码的AppError
func NewWithStatus(code, status int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Wrap 包装底层错误（网络错误、解析错误等）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// - 4xxxx: 调用方错误（参数错误、资源不存在）
// - 5xxxx: 服务端或上游错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal   = 50000 // 内部错误
	ErrCodeCacheError = 50002 // 缓存错误

	// 上游目录服务错误（50200-50399）
	ErrCodeUpstreamHTTP       = 50200 // 上游返回非2xx
	ErrCodeUpstreamDecode     = 50201 // 上游响应无法解析
	ErrCodeServiceUnavailable = 50300 // 目录服务不可用（重试耗尽）
	ErrCodeMaxRetriesExceeded = 50301 // 重试循环异常退出
	ErrCodeCircuitOpen        = 50302 // 熔断器打开

	// 资源错误（40400-40499）
	ErrCodeNotFound = 40400 // 资源不存在(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal           = New(ErrCodeInternal, "Erreur interne")
	ErrMaxRetriesExceeded = New(ErrCodeMaxRetriesExceeded, "Max retries exceeded")
	ErrInvalidParams      = New(ErrCodeInvalidParams, "Paramètres invalides")
	ErrBindError          = New(ErrCodeBindError, "Format des paramètres invalide")
)

// NotFound 上游返回404
func NotFound() *AppError {
	return NewWithStatus(ErrCodeNotFound, 404, "NOT_FOUND")
}

// ServiceUnavailable 将底层失败转换为面向用户的错误
// 保留底层错误中的上游状态码（如果有）
func ServiceUnavailable(message string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeServiceUnavailable,
		Message: message,
		Status:  StatusOf(cause),
		Err:     cause,
	}
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Erreur interne")
}

// HasCode 判断错误链中最外层AppError的错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound 是否为404
func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}

// StatusOf 提取错误链中的上游HTTP状态码，没有则返回0
func StatusOf(err error) int {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return 0
		}
		if appErr.Status != 0 {
			return appErr.Status
		}
		err = appErr.Err
	}
	return 0
}
