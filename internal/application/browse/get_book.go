package browse

import (
	"context"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	catalog shelf.Catalog
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(catalog shelf.Catalog) *GetBookUseCase {
	return &GetBookUseCase{catalog: catalog}
}

// Execute 查询单本图书，上游404时返回占位图书
func (uc *GetBookUseCase) Execute(ctx context.Context, formID string) (*book.Form, error) {
	if formID == "" {
		return nil, apperrors.ErrInvalidParams
	}
	return uc.catalog.GetBookDetails(ctx, formID)
}
