package shelf

import (
	"context"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
)

// Catalog 远程图书目录端口
// 由domain层定义接口，infrastructure层（glose客户端）实现，便于在测试中替换
type Catalog interface {
	// ListShelves 查询用户书架列表
	// fetched为上游本页的原始条数（含被丢弃的无id条目），用于判断是否还有下一页
	// 失败（包括404）统一返回ServiceUnavailable
	ListShelves(ctx context.Context, params PaginationParams) (shelves []*Shelf, fetched int, err error)

	// ListShelfBookIDs 查询书架内的图书id
	// 404视为空书架，返回空列表
	ListShelfBookIDs(ctx context.Context, shelfID string, params PaginationParams) ([]string, error)

	// GetBookDetails 查询单本图书详情
	// 404返回"Livre indisponible"占位图书，而不是错误
	GetBookDetails(ctx context.Context, formID string) (*book.Form, error)

	// GetBooksDetails 并发查询多本图书详情
	// 单个失败被忽略，结果顺序为完成顺序，与入参顺序无关
	GetBooksDetails(ctx context.Context, formIDs []string) []*book.Form
}
