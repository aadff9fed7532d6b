package browse

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
)

// mockCatalog shelf.Catalog的testify mock
type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListShelves(ctx context.Context, params shelf.PaginationParams) ([]*shelf.Shelf, int, error) {
	args := m.Called(ctx, params)
	shelves, _ := args.Get(0).([]*shelf.Shelf)
	return shelves, args.Int(1), args.Error(2)
}

func (m *mockCatalog) ListShelfBookIDs(ctx context.Context, shelfID string, params shelf.PaginationParams) ([]string, error) {
	args := m.Called(ctx, shelfID, params)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockCatalog) GetBookDetails(ctx context.Context, formID string) (*book.Form, error) {
	args := m.Called(ctx, formID)
	form, _ := args.Get(0).(*book.Form)
	return form, args.Error(1)
}

func (m *mockCatalog) GetBooksDetails(ctx context.Context, formIDs []string) []*book.Form {
	args := m.Called(ctx, formIDs)
	forms, _ := args.Get(0).([]*book.Form)
	return forms
}

// page 构造分页参数匹配器
func page(offset, limit int) shelf.PaginationParams {
	return shelf.Page(offset, limit)
}

func shelvesN(prefix string, n int) []*shelf.Shelf {
	shelves := make([]*shelf.Shelf, n)
	for i := range shelves {
		shelves[i] = &shelf.Shelf{ID: prefix + string(rune('a'+i))}
	}
	return shelves
}

func formsFor(ids []string) []*book.Form {
	forms := make([]*book.Form, len(ids))
	for i, id := range ids {
		forms[i] = &book.Form{ID: id, Title: "Title " + id}
	}
	return forms
}

func idsN(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = prefix + string(rune('a'+i))
	}
	return ids
}

func shelfIDs(shelves []*shelf.Shelf) []string {
	ids := make([]string, len(shelves))
	for i, s := range shelves {
		ids[i] = s.ID
	}
	return ids
}

func formIDs(forms []*book.Form) []string {
	ids := make([]string, len(forms))
	for i, f := range forms {
		ids[i] = f.ID
	}
	return ids
}
