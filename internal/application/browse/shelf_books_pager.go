package browse

import (
	"context"
	"sync"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
)

// DefaultBookPageSize 书架内图书默认每页数量
const DefaultBookPageSize = 12

const booksLoadError = "Erreur lors du chargement des livres"

// ShelfBooksPager 当前书架的图书分页器
// 每页先查询图书id，再并发查询详情；hasMore取决于id页的长度而不是详情数量
type ShelfBooksPager struct {
	*Pager[*book.Form]
	catalog shelf.Catalog

	mu      sync.Mutex
	shelfID string
}

// NewShelfBooksPager 创建图书分页器，初始没有选中书架
func NewShelfBooksPager(catalog shelf.Catalog, pageSize int) *ShelfBooksPager {
	if pageSize < 1 {
		pageSize = DefaultBookPageSize
	}
	return &ShelfBooksPager{
		Pager:   NewPager[*book.Form](pageSize, booksLoadError, nil),
		catalog: catalog,
	}
}

// SetShelf 切换书架：重置状态，书架非空时加载第一页
// shelfID为空时进入空状态（不加载、无错误、hasMore=false），不发起请求
func (p *ShelfBooksPager) SetShelf(ctx context.Context, shelfID string) error {
	p.mu.Lock()
	p.shelfID = shelfID
	p.mu.Unlock()

	if shelfID == "" {
		p.retarget(nil)
		return nil
	}

	p.retarget(p.fetcher(shelfID))
	return p.Load(ctx)
}

// ShelfID 当前书架
func (p *ShelfBooksPager) ShelfID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shelfID
}

// TotalBooks 已加载的图书数量
func (p *ShelfBooksPager) TotalBooks() int {
	return p.Len()
}

func (p *ShelfBooksPager) fetcher(shelfID string) FetchFunc[*book.Form] {
	return func(ctx context.Context, params shelf.PaginationParams) ([]*book.Form, int, error) {
		ids, err := p.catalog.ListShelfBookIDs(ctx, shelfID, params)
		if err != nil {
			return nil, 0, err
		}
		if len(ids) == 0 {
			return nil, 0, nil
		}
		return p.catalog.GetBooksDetails(ctx, ids), len(ids), nil
	}
}
