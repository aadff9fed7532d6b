package glose

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
	"github.com/xiebiao/shelfviewer/pkg/metrics"
)

// 面向用户的错误信息
const (
	MsgShelvesUnavailable    = "Impossible de charger les étagères. Vérifiez votre connexion internet."
	MsgShelfBooksUnavailable = "Impossible de charger les livres de cette étagère"
	MsgBookUnavailable       = "Impossible de charger les détails du livre"
)

// ListShelves 查询用户书架
// 任何失败（包括404）都转换为ServiceUnavailable
func (c *Client) ListShelves(ctx context.Context, params shelf.PaginationParams) ([]*shelf.Shelf, int, error) {
	u := c.buildURL("/users/"+url.PathEscape(c.userID)+"/shelves", params)

	body, err := c.fetch(ctx, endpointShelves, u)
	if err != nil {
		return nil, 0, apperrors.ServiceUnavailable(MsgShelvesUnavailable, err)
	}

	payloads, err := decodeList[shelfPayload](body, "shelves")
	if err != nil {
		return nil, 0, apperrors.ServiceUnavailable(MsgShelvesUnavailable,
			apperrors.Wrap(err, "decode shelves"))
	}
	return toShelves(payloads), len(payloads), nil
}

// ListShelfBookIDs 查询书架内图书id，404视为空书架
func (c *Client) ListShelfBookIDs(ctx context.Context, shelfID string, params shelf.PaginationParams) ([]string, error) {
	u := c.buildURL("/shelves/"+url.PathEscape(shelfID)+"/forms", params)

	body, err := c.fetch(ctx, endpointShelfForms, u)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, apperrors.ServiceUnavailable(MsgShelfBooksUnavailable, err)
	}

	refs, err := decodeList[formRef](body, "forms")
	if err != nil {
		return nil, apperrors.ServiceUnavailable(MsgShelfBooksUnavailable,
			apperrors.Wrap(err, "decode shelf forms"))
	}
	return toFormIDs(refs), nil
}

// GetBookDetails 查询图书详情
// 404返回占位图书；成功时填充缺失的语言、评分、价格
func (c *Client) GetBookDetails(ctx context.Context, formID string) (*book.Form, error) {
	if form, ok := c.cached(ctx, formID); ok {
		return form, nil
	}

	body, err := c.fetch(ctx, endpointForm, c.baseURL+"/forms/"+url.PathEscape(formID))
	if err != nil {
		if apperrors.IsNotFound(err) {
			metrics.IncPlaceholder("unavailable")
			return book.Unavailable(formID), nil
		}
		return nil, apperrors.ServiceUnavailable(MsgBookUnavailable, err)
	}

	var payload formPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.ServiceUnavailable(MsgBookUnavailable,
			apperrors.Wrap(err, "decode form"))
	}

	form := toForm(payload, formID)
	c.enricher.Apply(form)
	if form.SyntheticRating {
		metrics.IncPlaceholder("rating")
	}
	if form.SyntheticPrice {
		metrics.IncPlaceholder("price")
	}

	c.store(ctx, formID, form)
	return form, nil
}

// GetBooksDetails 并发查询多本图书
// 所有请求都会完成；失败的和没有标题的条目被丢弃，结果按完成顺序排列
func (c *Client) GetBooksDetails(ctx context.Context, formIDs []string) []*book.Form {
	var (
		mu    sync.Mutex
		forms = make([]*book.Form, 0, len(formIDs))
	)

	g := new(errgroup.Group)
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}

	for _, id := range formIDs {
		g.Go(func() error {
			form, err := c.GetBookDetails(ctx, id)
			if err != nil {
				c.logger.Warn("book details dropped",
					zap.String("form_id", id),
					zap.Error(err),
				)
				return nil
			}
			if !form.HasTitle() {
				return nil
			}

			mu.Lock()
			forms = append(forms, form)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return forms
}

func (c *Client) cached(ctx context.Context, formID string) (*book.Form, bool) {
	if c.cache == nil {
		return nil, false
	}

	form, ok, err := c.cache.Get(ctx, formID)
	switch {
	case err != nil:
		metrics.IncBookCache(metrics.ResultError)
		c.logger.Warn("book cache get failed", zap.String("form_id", formID), zap.Error(err))
		return nil, false
	case !ok:
		metrics.IncBookCache("miss")
		return nil, false
	default:
		metrics.IncBookCache("hit")
		return form, true
	}
}

// store 写缓存，占位图书不缓存
func (c *Client) store(ctx context.Context, formID string, form *book.Form) {
	if c.cache == nil || form.Unavailable {
		return
	}
	if err := c.cache.Set(ctx, formID, form); err != nil {
		metrics.IncBookCache(metrics.ResultError)
		c.logger.Warn("book cache set failed", zap.String("form_id", formID), zap.Error(err))
	}
}
