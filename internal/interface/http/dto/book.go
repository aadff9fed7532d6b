package dto

import "github.com/xiebiao/shelfviewer/internal/domain/book"

// AuthorResponse 作者
type AuthorResponse struct {
	ID   string `json:"id,omitempty" example:"5a8411b53ed02c04187ff0aa"`
	Name string `json:"name" example:"Robert C. Martin"`
}

// BookResponse HTTP图书响应
// synthetic_*为true表示该字段是客户端生成的占位值，不是真实数据
type BookResponse struct {
	ID              string           `json:"id" example:"5a8411b53ed02c04187ff02b"`
	Title           string           `json:"title" example:"Clean Code"`
	Authors         []AuthorResponse `json:"authors"`
	Cover           string           `json:"cover,omitempty" example:"https://cdn.glose.com/cover.jpg"`
	Price           *float64         `json:"price,omitempty" example:"12.99"`
	AverageRating   *float64         `json:"average_rating,omitempty" example:"4.4"`
	ISBN            string           `json:"isbn,omitempty"`
	Description     string           `json:"description,omitempty"`
	PublishedDate   string           `json:"published_date,omitempty"`
	PageCount       int              `json:"page_count,omitempty"`
	Language        string           `json:"language,omitempty" example:"FR"`
	Unavailable     bool             `json:"unavailable"`
	SyntheticRating bool             `json:"synthetic_rating"`
	SyntheticPrice  bool             `json:"synthetic_price"`
}

// ListShelfBooksRequest 书架图书查询参数
// min_rating、max_price为0或不传表示不过滤
type ListShelfBooksRequest struct {
	Offset    int      `form:"offset" binding:"omitempty,min=0" example:"0"`
	Limit     int      `form:"limit" binding:"omitempty,min=1,max=100" example:"12"`
	Query     string   `form:"query" binding:"max=200" example:"clean"`
	Author    string   `form:"author" binding:"max=200" example:"martin"`
	MinRating *float64 `form:"min_rating" binding:"omitempty,min=0,max=5" example:"4"`
	MaxPrice  *float64 `form:"max_price" binding:"omitempty,min=0" example:"30"`
}

// Filters 转换为领域搜索条件
func (r ListShelfBooksRequest) Filters() book.SearchFilters {
	return book.SearchFilters{
		Query:     r.Query,
		Author:    r.Author,
		MinRating: r.MinRating,
		MaxPrice:  r.MaxPrice,
	}
}

// ShelfBooksResponse 书架图书列表
type ShelfBooksResponse struct {
	List       []BookResponse `json:"list"`
	Count      int            `json:"count" example:"3"`
	HasResults bool           `json:"has_results" example:"true"`
	Fetched    int            `json:"fetched" example:"12"`
	Offset     int            `json:"offset" example:"0"`
	Limit      int            `json:"limit" example:"12"`
	HasMore    bool           `json:"has_more" example:"true"`
}

// NewBookResponse 领域对象转换为响应
func NewBookResponse(f *book.Form) BookResponse {
	authors := make([]AuthorResponse, 0, len(f.Authors))
	for _, a := range f.Authors {
		authors = append(authors, AuthorResponse{ID: a.ID, Name: a.Name})
	}

	return BookResponse{
		ID:              f.ID,
		Title:           f.Title,
		Authors:         authors,
		Cover:           f.Cover,
		Price:           f.Price,
		AverageRating:   f.AverageRating,
		ISBN:            f.ISBN,
		Description:     f.Description,
		PublishedDate:   f.PublishedDate,
		PageCount:       f.PageCount,
		Language:        f.Language,
		Unavailable:     f.Unavailable,
		SyntheticRating: f.SyntheticRating,
		SyntheticPrice:  f.SyntheticPrice,
	}
}

// NewBookList 转换列表，nil输入返回空切片
func NewBookList(forms []*book.Form) []BookResponse {
	list := make([]BookResponse, 0, len(forms))
	for _, f := range forms {
		list = append(list, NewBookResponse(f))
	}
	return list
}
