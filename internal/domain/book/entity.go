package book

// Author 作者
type Author struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Form 图书（上游服务称为form）
// 设计说明:
// 1. 价格统一为主币种单位(元/欧元)，上游以分为单位时在映射阶段已换算
// 2. Price、AverageRating为nil表示缺失
// 3. SyntheticRating/SyntheticPrice标记由客户端生成的占位值，区别于真实数据
type Form struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         []Author `json:"authors"`
	Cover           string   `json:"cover,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
	ISBN            string   `json:"isbn,omitempty"`
	Description     string   `json:"description,omitempty"`
	PublishedDate   string   `json:"published_date,omitempty"`
	PageCount       int      `json:"page_count,omitempty"`
	Language        string   `json:"language,omitempty"`
	Unavailable     bool     `json:"unavailable,omitempty"`
	SyntheticRating bool     `json:"synthetic_rating,omitempty"`
	SyntheticPrice  bool     `json:"synthetic_price,omitempty"`
}

// UnavailableTitle 404占位图书的标题
const UnavailableTitle = "Livre indisponible"

// Unavailable 构造占位图书(上游返回404时使用)
// 调用方无需特殊处理即可展示"不可用"条目
func Unavailable(formID string) *Form {
	return &Form{
		ID:          formID,
		Title:       UnavailableTitle,
		Authors:     []Author{},
		Unavailable: true,
	}
}

// HasTitle 是否有可展示的标题
func (f *Form) HasTitle() bool {
	return f != nil && f.Title != ""
}

// AuthorNames 作者姓名列表
func (f *Form) AuthorNames() []string {
	names := make([]string, 0, len(f.Authors))
	for _, a := range f.Authors {
		names = append(names, a.Name)
	}
	return names
}
