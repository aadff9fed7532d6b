package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
)

// BookCache 图书详情缓存
// Key设计：shelfviewer:form:{form_id}，值为JSON，带TTL
// 缓存的是填充占位值之后的图书，同一本书在TTL内展示一致
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

const bookKeyPrefix = "shelfviewer:form:"

// NewBookCache 创建图书详情缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

func bookKey(formID string) string {
	return bookKeyPrefix + formID
}

// Get 读取缓存，未命中返回(nil, false, nil)
func (c *BookCache) Get(ctx context.Context, formID string) (*book.Form, bool, error) {
	data, err := c.client.Get(ctx, bookKey(formID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, cacheError("读取缓存失败", err)
	}

	var form book.Form
	if err := json.Unmarshal(data, &form); err != nil {
		// 损坏的条目直接删除，按未命中处理
		_ = c.client.Del(ctx, bookKey(formID)).Err()
		return nil, false, nil
	}
	return &form, true, nil
}

// Set 以请求时的formID写入缓存
func (c *BookCache) Set(ctx context.Context, formID string, form *book.Form) error {
	data, err := json.Marshal(form)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书失败")
	}

	if err := c.client.Set(ctx, bookKey(formID), data, c.ttl).Err(); err != nil {
		return cacheError("写入缓存失败", err)
	}
	return nil
}

func cacheError(message string, err error) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeCacheError,
		Message: message,
		Err:     err,
	}
}
