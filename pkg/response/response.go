package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

// Response 统一响应结构
// Code是业务错误码（0表示成功），Data仅在成功时返回
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 内部错误只写日志，响应体只包含面向用户的Message
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		zap.L().Warn("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}

	c.JSON(HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// HTTPStatus 业务错误码到HTTP状态码的映射
func HTTPStatus(code int) int {
	switch {
	case code == apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case code >= 40900 && code < 41000:
		return http.StatusBadRequest
	case code == apperrors.ErrCodeServiceUnavailable,
		code == apperrors.ErrCodeMaxRetriesExceeded,
		code == apperrors.ErrCodeCircuitOpen:
		return http.StatusServiceUnavailable
	case code >= 50200 && code < 50300:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 分页响应结构
// =========================================

// OffsetPage 基于offset/limit的分页数据（上游没有总数，只能给出是否还有下一页）
type OffsetPage struct {
	List    interface{} `json:"list"`
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	Count   int         `json:"count"`
	HasMore bool        `json:"has_more"`
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, count, offset, limit int, hasMore bool) {
	Success(c, OffsetPage{
		List:    list,
		Offset:  offset,
		Limit:   limit,
		Count:   count,
		HasMore: hasMore,
	})
}
