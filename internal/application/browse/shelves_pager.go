package browse

import (
	"context"

	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
)

// DefaultShelfPageSize 书架列表默认每页数量
const DefaultShelfPageSize = 20

const shelvesLoadError = "Erreur lors du chargement des étagères"

// ShelvesPager 用户书架分页器
type ShelvesPager struct {
	*Pager[*shelf.Shelf]
}

// NewShelvesPager 创建书架分页器，pageSize<1时使用默认值
func NewShelvesPager(catalog shelf.Catalog, pageSize int) *ShelvesPager {
	if pageSize < 1 {
		pageSize = DefaultShelfPageSize
	}

	fetch := func(ctx context.Context, params shelf.PaginationParams) ([]*shelf.Shelf, int, error) {
		return catalog.ListShelves(ctx, params)
	}

	return &ShelvesPager{Pager: NewPager[*shelf.Shelf](pageSize, shelvesLoadError, fetch)}
}
