package dto

import "github.com/xiebiao/shelfviewer/internal/domain/shelf"

// ListShelvesRequest 书架列表查询参数
type ListShelvesRequest struct {
	Offset int `form:"offset" binding:"omitempty,min=0" example:"0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// ShelfResponse HTTP书架响应
type ShelfResponse struct {
	ID          string `json:"id" example:"5a8411b53ed02c04187ff03c"`
	Name        string `json:"name" example:"Fiction"`
	Description string `json:"description" example:"Romans et littérature contemporaine"`
	Slug        string `json:"slug,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// NewShelfList 领域对象转换为响应
func NewShelfList(shelves []*shelf.Shelf) []ShelfResponse {
	list := make([]ShelfResponse, 0, len(shelves))
	for _, s := range shelves {
		list = append(list, ShelfResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Slug:        s.Slug,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return list
}
