package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/shelfviewer/internal/application/browse"
	"github.com/xiebiao/shelfviewer/internal/interface/http/dto"
	"github.com/xiebiao/shelfviewer/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	getBook *browse.GetBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(getBook *browse.GetBookUseCase) *BookHandler {
	return &BookHandler{getBook: getBook}
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  查询单本图书；上游不存在时返回unavailable=true的占位图书
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书(form)ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      503 {object} response.Response "目录服务不可用"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	form, err := h.getBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(form))
}
