package browse

import (
	"context"

	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
)

// maxPageSize HTTP接口允许的最大每页数量
const maxPageSize = 100

// ListShelvesUseCase 书架列表查询用例
type ListShelvesUseCase struct {
	catalog     shelf.Catalog
	defaultSize int
}

// NewListShelvesUseCase 创建书架列表用例
func NewListShelvesUseCase(catalog shelf.Catalog, defaultSize int) *ListShelvesUseCase {
	if defaultSize < 1 {
		defaultSize = DefaultShelfPageSize
	}
	return &ListShelvesUseCase{catalog: catalog, defaultSize: defaultSize}
}

// ListShelvesRequest 书架列表请求
type ListShelvesRequest struct {
	Offset int
	Limit  int
}

// ListShelvesResponse 书架列表响应
type ListShelvesResponse struct {
	Shelves []*shelf.Shelf
	Offset  int
	Limit   int
	HasMore bool
}

// Execute 执行查询
// limit<1使用默认值，最大100；offset<0按0处理
func (uc *ListShelvesUseCase) Execute(ctx context.Context, req ListShelvesRequest) (*ListShelvesResponse, error) {
	offset, limit := normalizePage(req.Offset, req.Limit, uc.defaultSize)

	shelves, fetched, err := uc.catalog.ListShelves(ctx, shelf.Page(offset, limit))
	if err != nil {
		return nil, err
	}

	return &ListShelvesResponse{
		Shelves: shelves,
		Offset:  offset,
		Limit:   limit,
		HasMore: fetched == limit,
	}, nil
}

func normalizePage(offset, limit, defaultSize int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = defaultSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}
