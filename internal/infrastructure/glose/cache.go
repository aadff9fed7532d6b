package glose

import (
	"context"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
)

// DetailCache 图书详情缓存
// Get未命中时返回(nil, false, nil)；缓存错误只记录日志，不影响查询
// 条目以请求时的formID为键，上游返回的规范id可能不同
type DetailCache interface {
	Get(ctx context.Context, formID string) (*book.Form, bool, error)
	Set(ctx context.Context, formID string, form *book.Form) error
}
