package browse

import (
	"context"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

// ListShelfBooksUseCase 书架图书查询用例：id分页 → 并发查询详情 → 过滤
type ListShelfBooksUseCase struct {
	catalog     shelf.Catalog
	searcher    *book.Searcher
	defaultSize int
}

// NewListShelfBooksUseCase 创建书架图书用例
func NewListShelfBooksUseCase(catalog shelf.Catalog, defaultSize int) *ListShelfBooksUseCase {
	if defaultSize < 1 {
		defaultSize = DefaultBookPageSize
	}
	return &ListShelfBooksUseCase{
		catalog:     catalog,
		searcher:    book.NewSearcher(),
		defaultSize: defaultSize,
	}
}

// ListShelfBooksRequest 书架图书请求
type ListShelfBooksRequest struct {
	ShelfID string
	Offset  int
	Limit   int
	Filters book.SearchFilters
}

// ListShelfBooksResponse 书架图书响应
// Fetched是过滤前本页拿到的图书数，HasMore取决于id页是否满页
type ListShelfBooksResponse struct {
	Books      []*book.Form
	Count      int
	HasResults bool
	HasMore    bool
	Fetched    int
	Offset     int
	Limit      int
}

// Execute 执行查询
func (uc *ListShelfBooksUseCase) Execute(ctx context.Context, req ListShelfBooksRequest) (*ListShelfBooksResponse, error) {
	if req.ShelfID == "" {
		return nil, apperrors.ErrInvalidParams
	}
	offset, limit := normalizePage(req.Offset, req.Limit, uc.defaultSize)

	ids, err := uc.catalog.ListShelfBookIDs(ctx, req.ShelfID, shelf.Page(offset, limit))
	if err != nil {
		return nil, err
	}

	var forms []*book.Form
	if len(ids) > 0 {
		forms = uc.catalog.GetBooksDetails(ctx, ids)
	}

	result := uc.searcher.Search(forms, req.Filters)
	return &ListShelfBooksResponse{
		Books:      result.Books,
		Count:      result.Count,
		HasResults: result.HasResults,
		HasMore:    len(ids) == limit,
		Fetched:    len(forms),
		Offset:     offset,
		Limit:      limit,
	}, nil
}
