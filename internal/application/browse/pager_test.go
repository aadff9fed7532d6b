package browse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

var ctx = context.Background()

func TestShelvesPager_LoadAndLoadMore(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("p1", 2), 2, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(2, 2)).Return(shelvesN("p2", 1), 1, nil).Once()

	p := NewShelvesPager(catalog, 2)
	assert.Equal(t, StateIdle, p.Snapshot().State)

	require.NoError(t, p.Load(ctx))
	snap := p.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, []string{"p1a", "p1b"}, shelfIDs(snap.Items))
	assert.True(t, snap.HasMore, "满页时还有下一页")
	assert.Equal(t, 0, snap.Offset)

	assert.True(t, p.LoadMore(ctx))
	snap = p.Snapshot()
	assert.Equal(t, []string{"p1a", "p1b", "p2a"}, shelfIDs(snap.Items))
	assert.False(t, snap.HasMore, "不满页后没有下一页")
	assert.Equal(t, 2, snap.Offset)

	// hasMore为false时不再请求
	assert.False(t, p.LoadMore(ctx))
	catalog.AssertExpectations(t)
	catalog.AssertNumberOfCalls(t, "ListShelves", 2)
}

func TestShelvesPager_HasMoreUsesFetchedCount(t *testing.T) {
	catalog := new(mockCatalog)
	// 上游返回满页3条，其中1条没有id被丢弃
	catalog.On("ListShelves", mock.Anything, page(0, 3)).Return(shelvesN("p1", 2), 3, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(3, 3)).Return(shelvesN("p2", 1), 1, nil).Once()

	p := NewShelvesPager(catalog, 3)
	require.NoError(t, p.Load(ctx))

	snap := p.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.True(t, snap.HasMore)

	assert.True(t, p.LoadMore(ctx))
	snap = p.Snapshot()
	assert.Equal(t, []string{"p1a", "p1b", "p2a"}, shelfIDs(snap.Items))
	assert.False(t, snap.HasMore)
	catalog.AssertExpectations(t)
}

func TestShelvesPager_DefaultPageSize(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("ListShelves", mock.Anything, page(0, DefaultShelfPageSize)).Return(shelvesN("s", 1), 1, nil).Once()

	p := NewShelvesPager(catalog, 0)
	require.NoError(t, p.Load(ctx))
	catalog.AssertExpectations(t)
}

func TestPager_FailureKeepsItems(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("p1", 2), 2, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(2, 2)).
		Return(nil, 0, apperrors.ServiceUnavailable("Impossible de charger les étagères.", errors.New("dial tcp"))).Once()
	catalog.On("ListShelves", mock.Anything, page(2, 2)).Return(shelvesN("p2", 2), 2, nil).Once()

	p := NewShelvesPager(catalog, 2)
	require.NoError(t, p.Load(ctx))

	// 加载更多失败：保留已加载的列表，offset不前进
	assert.True(t, p.LoadMore(ctx))
	snap := p.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "Impossible de charger les étagères.", snap.Error)
	assert.Equal(t, []string{"p1a", "p1b"}, shelfIDs(snap.Items))
	assert.Equal(t, 0, snap.Offset)
	assert.True(t, snap.HasMore)
	assert.False(t, snap.Loading)

	// 重试同一页，成功后清除错误
	assert.True(t, p.LoadMore(ctx))
	snap = p.Snapshot()
	assert.Empty(t, snap.Error)
	assert.Equal(t, StateLoaded, snap.State)
	assert.Len(t, snap.Items, 4)
	assert.Equal(t, 2, snap.Offset)
	catalog.AssertExpectations(t)
}

func TestPager_RefreshClearsErrorWhileLoading(t *testing.T) {
	catalog := new(mockCatalog)
	started := make(chan struct{})
	release := make(chan struct{})

	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(nil, 0, errors.New("boom")).Once()
	catalog.On("ListShelves", mock.Anything, page(0, 2)).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(shelvesN("p1", 2), 2, nil).Once()

	p := NewShelvesPager(catalog, 2)
	require.Error(t, p.Load(ctx))
	require.Equal(t, "boom", p.Snapshot().Error)

	done := make(chan error)
	go func() { done <- p.Refresh(ctx) }()
	<-started

	snap := p.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, StateLoading, snap.State)
	assert.Empty(t, snap.Error, "重新加载期间不再显示旧错误")

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, p.Snapshot().Items, 2)
}

func TestPager_ErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"AppError使用Message", apperrors.ServiceUnavailable("indisponible", errors.New("x")), "indisponible"},
		{"普通错误使用错误文本", errors.New("timeout"), "timeout"},
		{"空错误文本使用默认信息", errors.New(""), shelvesLoadError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := new(mockCatalog)
			catalog.On("ListShelves", mock.Anything, mock.Anything).Return(nil, 0, tt.err)

			p := NewShelvesPager(catalog, 2)
			assert.Error(t, p.Load(ctx))
			assert.Equal(t, tt.want, p.Snapshot().Error)
		})
	}
}

func TestPager_LoadMoreWhileInFlight(t *testing.T) {
	catalog := new(mockCatalog)
	started := make(chan struct{})
	release := make(chan struct{})

	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("p1", 2), 2, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(2, 2)).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(shelvesN("p2", 2), 2, nil).Once()

	p := NewShelvesPager(catalog, 2)
	require.NoError(t, p.Load(ctx))

	done := make(chan bool)
	go func() { done <- p.LoadMore(ctx) }()
	<-started

	snap := p.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, StateLoadingMore, snap.State)
	assert.False(t, p.LoadMore(ctx), "请求进行中时LoadMore不做任何事")

	close(release)
	assert.True(t, <-done)
	assert.Len(t, p.Snapshot().Items, 4)
	catalog.AssertNumberOfCalls(t, "ListShelves", 2)
}

func TestPager_RefreshReplaces(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("p1", 2), 2, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(2, 2)).Return(nil, 0, errors.New("boom")).Once()
	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("r", 2), 2, nil).Once()

	p := NewShelvesPager(catalog, 2)
	require.NoError(t, p.Load(ctx))
	p.LoadMore(ctx)
	require.NotEmpty(t, p.Snapshot().Error)

	require.NoError(t, p.Refresh(ctx))
	snap := p.Snapshot()
	assert.Equal(t, []string{"ra", "rb"}, shelfIDs(snap.Items))
	assert.Empty(t, snap.Error)
	assert.Equal(t, 0, snap.Offset)
	catalog.AssertExpectations(t)
}

func TestPager_StaleResultDiscarded(t *testing.T) {
	catalog := new(mockCatalog)
	started := make(chan struct{})
	release := make(chan struct{})

	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("p1", 2), 2, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(2, 2)).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(shelvesN("stale", 2), 2, nil).Once()
	catalog.On("ListShelves", mock.Anything, page(0, 2)).Return(shelvesN("fresh", 1), 1, nil).Once()

	p := NewShelvesPager(catalog, 2)
	require.NoError(t, p.Load(ctx))

	done := make(chan struct{})
	go func() {
		p.LoadMore(ctx)
		close(done)
	}()
	<-started

	require.NoError(t, p.Refresh(ctx))
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LoadMore未返回")
	}

	snap := p.Snapshot()
	assert.Equal(t, []string{"fresha"}, shelfIDs(snap.Items), "刷新前发出的请求结果应被丢弃")
	assert.False(t, snap.Loading)
	assert.False(t, snap.HasMore)
	assert.Equal(t, StateLoaded, snap.State)
}

func TestShelfBooksPager_NoShelf(t *testing.T) {
	catalog := new(mockCatalog)
	p := NewShelfBooksPager(catalog, 3)

	require.NoError(t, p.SetShelf(ctx, ""))
	snap := p.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	assert.False(t, snap.HasMore)
	assert.False(t, p.LoadMore(ctx))
	require.NoError(t, p.Refresh(ctx))

	catalog.AssertNotCalled(t, "ListShelfBookIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestShelfBooksPager_Pages(t *testing.T) {
	catalog := new(mockCatalog)
	first := idsN("f", 3)
	catalog.On("ListShelfBookIDs", mock.Anything, "s1", page(0, 3)).Return(first, nil).Once()
	// 一本详情失败被丢弃，hasMore仍按id数量判断
	catalog.On("GetBooksDetails", mock.Anything, first).Return(formsFor(first[:2])).Once()
	catalog.On("ListShelfBookIDs", mock.Anything, "s1", page(3, 3)).Return([]string{}, nil).Once()

	p := NewShelfBooksPager(catalog, 3)
	require.NoError(t, p.SetShelf(ctx, "s1"))

	assert.Equal(t, "s1", p.ShelfID())
	assert.Equal(t, 2, p.TotalBooks())
	assert.True(t, p.Snapshot().HasMore)

	// 空id页：hasMore=false，列表不变，不查询详情
	assert.True(t, p.LoadMore(ctx))
	snap := p.Snapshot()
	assert.False(t, snap.HasMore)
	assert.Equal(t, []string{"fa", "fb"}, formIDs(snap.Items))
	catalog.AssertNumberOfCalls(t, "GetBooksDetails", 1)
	catalog.AssertExpectations(t)
}

func TestShelfBooksPager_EmptyShelfClearsOnRefresh(t *testing.T) {
	catalog := new(mockCatalog)
	ids := idsN("f", 2)
	catalog.On("ListShelfBookIDs", mock.Anything, "s1", page(0, 2)).Return(ids, nil).Once()
	catalog.On("GetBooksDetails", mock.Anything, ids).Return(formsFor(ids)).Once()
	catalog.On("ListShelfBookIDs", mock.Anything, "s1", page(0, 2)).Return([]string{}, nil).Once()

	p := NewShelfBooksPager(catalog, 2)
	require.NoError(t, p.SetShelf(ctx, "s1"))
	require.Equal(t, 2, p.TotalBooks())

	require.NoError(t, p.Refresh(ctx))
	assert.Zero(t, p.TotalBooks())
	assert.False(t, p.Snapshot().HasMore)
}

func TestShelfBooksPager_SwitchShelfDiscardsStale(t *testing.T) {
	catalog := new(mockCatalog)
	started := make(chan struct{})
	release := make(chan struct{})

	oldIDs, newIDs := idsN("old", 2), idsN("new", 1)
	catalog.On("ListShelfBookIDs", mock.Anything, "s1", page(0, 2)).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(oldIDs, nil).Once()
	catalog.On("GetBooksDetails", mock.Anything, oldIDs).Return(formsFor(oldIDs)).Maybe()
	catalog.On("ListShelfBookIDs", mock.Anything, "s2", page(0, 2)).Return(newIDs, nil).Once()
	catalog.On("GetBooksDetails", mock.Anything, newIDs).Return(formsFor(newIDs)).Once()

	p := NewShelfBooksPager(catalog, 2)

	done := make(chan struct{})
	go func() {
		_ = p.SetShelf(ctx, "s1")
		close(done)
	}()
	<-started

	require.NoError(t, p.SetShelf(ctx, "s2"))
	close(release)
	<-done

	snap := p.Snapshot()
	assert.Equal(t, "s2", p.ShelfID())
	assert.Equal(t, []string{"newa"}, formIDs(snap.Items))
	assert.False(t, snap.HasMore)
	assert.False(t, snap.Loading)
}

func TestShelfBooksPager_SwitchToNoShelf(t *testing.T) {
	catalog := new(mockCatalog)
	ids := idsN("f", 2)
	catalog.On("ListShelfBookIDs", mock.Anything, "s1", page(0, 2)).Return(ids, nil).Once()
	catalog.On("GetBooksDetails", mock.Anything, ids).Return(formsFor(ids)).Once()

	p := NewShelfBooksPager(catalog, 2)
	require.NoError(t, p.SetShelf(ctx, "s1"))
	require.NoError(t, p.SetShelf(ctx, ""))

	snap := p.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.HasMore)
	assert.Equal(t, StateIdle, snap.State)
}
