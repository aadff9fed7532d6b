package glose

import (
	"bytes"
	"encoding/json"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
)

// shelfPayload 上游书架
type shelfPayload struct {
	ID          string `json:"id"`
	LegacyID    string `json:"_id"`
	Slug        string `json:"slug"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// formRef 书架内的图书引用：字符串id或带id/_id的对象
type formRef string

func (r *formRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = formRef(s)
		return nil
	}

	var obj struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// 无法识别的条目视为空，由调用方丢弃
		*r = ""
		return nil
	}
	*r = formRef(shelf.ResolveID(obj.ID, obj.LegacyID))
	return nil
}

type authorPayload struct {
	ID       string `json:"id"`
	LegacyID string `json:"_id"`
	Name     string `json:"name"`
}

// formPayload 上游图书详情
type formPayload struct {
	ID            string          `json:"id"`
	LegacyID      string          `json:"_id"`
	Title         string          `json:"title"`
	Authors       []authorPayload `json:"authors"`
	Cover         string          `json:"cover"`
	Image         string          `json:"image"`
	Price         json.RawMessage `json:"price"`
	AverageRating *float64        `json:"averageRating"`
	ISBN          string          `json:"isbn"`
	Description   string          `json:"description"`
	PublishedDate string          `json:"publishedDate"`
	PageCount     int             `json:"pageCount"`
	Language      string          `json:"language"`
}

// decodeList 解析列表信封
// 支持裸数组、{key: [...]}、{data: [...]}；key存在且非null时优先，其他情况返回空列表
func decodeList[T any](body json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []T{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		for _, k := range []string{key, "data"} {
			raw, ok := envelope[k]
			if !ok || isNull(raw) {
				continue
			}
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return []T{}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// toShelves 映射书架并按页内位置分配展示名称
// 名称在丢弃无id条目之前分配，保证位置与上游一致
func toShelves(payloads []shelfPayload) []*shelf.Shelf {
	shelves := make([]*shelf.Shelf, 0, len(payloads))
	for i, p := range payloads {
		name, desc := shelf.DisplayName(i)
		id := shelf.ResolveID(p.ID, p.LegacyID)
		if id == "" {
			continue
		}
		shelves = append(shelves, &shelf.Shelf{
			ID:          id,
			Name:        name,
			Description: desc,
			Slug:        p.Slug,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return shelves
}

func toFormIDs(refs []formRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r != "" {
			ids = append(ids, string(r))
		}
	}
	return ids
}

// toForm 映射图书详情（不含占位值填充）
func toForm(p formPayload, requestedID string) *book.Form {
	id := shelf.ResolveID(p.ID, p.LegacyID)
	if id == "" {
		id = requestedID
	}

	authors := make([]book.Author, 0, len(p.Authors))
	for _, a := range p.Authors {
		authors = append(authors, book.Author{
			Name: a.Name,
			ID:   shelf.ResolveID(a.ID, a.LegacyID),
		})
	}

	cover := p.Image
	if cover == "" {
		cover = p.Cover
	}

	return &book.Form{
		ID:            id,
		Title:         p.Title,
		Authors:       authors,
		Cover:         cover,
		Price:         parsePrice(p.Price),
		AverageRating: p.AverageRating,
		ISBN:          p.ISBN,
		Description:   p.Description,
		PublishedDate: p.PublishedDate,
		PageCount:     p.PageCount,
		Language:      p.Language,
	}
}

// parsePrice 价格可能是数字（主币种单位）或{amount}对象（分）
// 无法识别时返回nil，由Enricher生成占位值
func parsePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var obj struct {
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Amount != 0 {
		v := obj.Amount / 100
		return &v
	}
	return nil
}
