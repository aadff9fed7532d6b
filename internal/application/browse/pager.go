// Package browse 提供书架浏览的应用层：有状态的分页器（CLI使用）和无状态的查询用例（HTTP接口使用）
package browse

import (
	"context"
	"errors"
	"sync"

	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

// State 分页器状态
type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateLoaded      State = "loaded"
	StateLoadingMore State = "loading-more"
	StateError       State = "error"
)

// FetchFunc 加载一页数据
// pageLen是上游返回的原始条数，用于判断是否还有下一页（可能大于len(items)，例如图书详情被丢弃时）
type FetchFunc[T any] func(ctx context.Context, params shelf.PaginationParams) (items []T, pageLen int, err error)

// Snapshot 分页器状态快照
type Snapshot[T any] struct {
	Items   []T
	State   State
	Loading bool
	Error   string
	HasMore bool
	Offset  int
}

// Pager 通用offset分页器，可并发使用
//
// 规则：
//  1. 加载中或hasMore为false时LoadMore不做任何事
//  2. 发起请求时清除错误；失败只设置错误信息，已加载的列表保持不变
//  3. Refresh或切换目标后，之前发出的请求结果被丢弃（不取消请求）
//  4. offset只在成功拿到一页后前进
type Pager[T any] struct {
	pageSize   int
	defaultErr string

	mu         sync.Mutex
	fetch      FetchFunc[T]
	items      []T
	offset     int
	hasMore    bool
	inFlight   bool
	state      State
	errMsg     string
	generation uint64
}

// NewPager 创建分页器，fetch为nil表示没有目标
func NewPager[T any](pageSize int, defaultErr string, fetch FetchFunc[T]) *Pager[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager[T]{
		pageSize:   pageSize,
		defaultErr: defaultErr,
		fetch:      fetch,
		hasMore:    fetch != nil,
		state:      StateIdle,
	}
}

// Load 加载第一页（替换当前列表）
func (p *Pager[T]) Load(ctx context.Context) error {
	return p.Refresh(ctx)
}

// Refresh 重置offset、清空列表并重新加载第一页
// 没有目标时直接返回nil
func (p *Pager[T]) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.fetch == nil {
		p.mu.Unlock()
		return nil
	}
	p.generation++
	p.items = nil
	p.offset = 0
	return p.run(ctx, 0, false)
}

// LoadMore 加载下一页并追加
// 返回是否真正发起了请求；结果（包括错误）通过Snapshot读取
func (p *Pager[T]) LoadMore(ctx context.Context) bool {
	p.mu.Lock()
	if p.fetch == nil || p.inFlight || !p.hasMore {
		p.mu.Unlock()
		return false
	}
	_ = p.run(ctx, p.offset+p.pageSize, true)
	return true
}

// run 在持有锁的情况下调用，请求期间释放锁
func (p *Pager[T]) run(ctx context.Context, offset int, appendPage bool) error {
	gen := p.generation
	fetch := p.fetch
	p.inFlight = true
	p.errMsg = ""
	if appendPage {
		p.state = StateLoadingMore
	} else {
		p.state = StateLoading
	}
	p.mu.Unlock()

	items, pageLen, err := fetch(ctx, shelf.Page(offset, p.pageSize))

	p.mu.Lock()
	defer p.mu.Unlock()

	// 目标已切换或已刷新，结果作废
	if gen != p.generation {
		return err
	}
	p.inFlight = false

	if err != nil {
		p.errMsg = p.message(err)
		p.state = StateError
		return err
	}

	if appendPage {
		p.items = append(p.items, items...)
	} else {
		p.items = append([]T(nil), items...)
	}
	p.offset = offset
	p.hasMore = pageLen == p.pageSize
	p.state = StateLoaded
	return nil
}

// retarget 切换数据源并重置全部状态，进行中的请求结果将被丢弃
func (p *Pager[T]) retarget(fetch FetchFunc[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.fetch = fetch
	p.items = nil
	p.offset = 0
	p.hasMore = fetch != nil
	p.inFlight = false
	p.errMsg = ""
	p.state = StateIdle
}

// Snapshot 当前状态，Items为副本
func (p *Pager[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot[T]{
		Items:   append(make([]T, 0, len(p.items)), p.items...),
		State:   p.state,
		Loading: p.inFlight,
		Error:   p.errMsg,
		HasMore: p.hasMore,
		Offset:  p.offset,
	}
}

// Len 已加载条数
func (p *Pager[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *Pager[T]) message(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return p.defaultErr
}
