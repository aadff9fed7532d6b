package book

import "strings"

// SearchFilters 搜索条件
// 所有字段均可选；MinRating、MaxPrice为nil或<=0时视为未设置
type SearchFilters struct {
	Query     string
	Author    string
	MinRating *float64
	MaxPrice  *float64
}

// SearchResult 搜索结果
type SearchResult struct {
	Books      []*Form
	Count      int
	HasResults bool
}

// IsEmpty 是否没有任何有效条件
func (f SearchFilters) IsEmpty() bool {
	return f.Query == "" && f.Author == "" && !threshold(f.MinRating) && !threshold(f.MaxPrice)
}

func threshold(v *float64) bool {
	return v != nil && *v > 0
}

// Search 在已加载的图书中过滤
// 规则（各条件之间为AND，大小写不敏感的子串匹配）:
// - Query: 标题或任一作者姓名包含关键词
// - Author: 任一作者姓名包含该子串
// - MinRating: 仅排除"有评分且低于阈值"的图书
// - MaxPrice: 仅排除"有价格且高于上限"的图书
// 保持输入顺序
func Search(books []*Form, filters SearchFilters) SearchResult {
	return pick(books, matchIndices(books, filters))
}

// matchIndices 返回命中图书在books中的下标
func matchIndices(books []*Form, filters SearchFilters) []int {
	indices := make([]int, 0, len(books))
	if filters.IsEmpty() {
		for i := range books {
			indices = append(indices, i)
		}
		return indices
	}

	query := strings.ToLower(filters.Query)
	author := strings.ToLower(filters.Author)

	for i, b := range books {
		if b == nil {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(b.Title), query) && !b.hasAuthorLike(query) {
			continue
		}
		if author != "" && !b.hasAuthorLike(author) {
			continue
		}
		if threshold(filters.MinRating) && b.AverageRating != nil && *b.AverageRating < *filters.MinRating {
			continue
		}
		if threshold(filters.MaxPrice) && b.Price != nil && *b.Price > *filters.MaxPrice {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}

// pick 按下标从books构造结果，Books总是新切片
func pick(books []*Form, indices []int) SearchResult {
	matched := make([]*Form, 0, len(indices))
	for _, i := range indices {
		matched = append(matched, books[i])
	}
	return SearchResult{
		Books:      matched,
		Count:      len(matched),
		HasResults: len(matched) > 0,
	}
}

// hasAuthorLike needle必须已经是小写
func (f *Form) hasAuthorLike(needle string) bool {
	for _, a := range f.Authors {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			return true
		}
	}
	return false
}
