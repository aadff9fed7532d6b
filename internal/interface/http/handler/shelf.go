package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/shelfviewer/internal/application/browse"
	"github.com/xiebiao/shelfviewer/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shelfviewer/pkg/errors"
	"github.com/xiebiao/shelfviewer/pkg/response"
)

// ShelfHandler 书架HTTP处理器
type ShelfHandler struct {
	listShelves    *browse.ListShelvesUseCase
	listShelfBooks *browse.ListShelfBooksUseCase
}

// NewShelfHandler 创建书架处理器
func NewShelfHandler(listShelves *browse.ListShelvesUseCase, listShelfBooks *browse.ListShelfBooksUseCase) *ShelfHandler {
	return &ShelfHandler{
		listShelves:    listShelves,
		listShelfBooks: listShelfBooks,
	}
}

// ListShelves 书架列表
// @Summary      书架列表
// @Description  分页查询用户书架，名称和描述按页内位置分配
// @Tags         书架
// @Produce      json
// @Param        offset query int false "偏移量"
// @Param        limit  query int false "每页数量(默认20,最大100)"
// @Success      200 {object} response.Response{data=response.OffsetPage{list=[]dto.ShelfResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      503 {object} response.Response "目录服务不可用"
// @Router       /api/v1/shelves [get]
func (h *ShelfHandler) ListShelves(c *gin.Context) {
	var req dto.ListShelvesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message+": "+err.Error())
		return
	}

	result, err := h.listShelves.Execute(c.Request.Context(), browse.ListShelvesRequest{
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := dto.NewShelfList(result.Shelves)
	response.SuccessWithPage(c, list, len(list), result.Offset, result.Limit, result.HasMore)
}

// ListShelfBooks 书架内图书
// @Summary      书架图书
// @Description  分页查询书架内图书详情，并按关键词、作者、评分、价格过滤当前页
// @Tags         书架
// @Produce      json
// @Param        id         path  string  true  "书架ID"
// @Param        offset     query int     false "偏移量"
// @Param        limit      query int     false "每页数量(默认12,最大100)"
// @Param        query      query string  false "标题或作者关键词"
// @Param        author     query string  false "作者"
// @Param        min_rating query number  false "最低评分"
// @Param        max_price  query number  false "最高价格"
// @Success      200 {object} response.Response{data=dto.ShelfBooksResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      503 {object} response.Response "目录服务不可用"
// @Router       /api/v1/shelves/{id}/books [get]
func (h *ShelfHandler) ListShelfBooks(c *gin.Context) {
	var req dto.ListShelfBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message+": "+err.Error())
		return
	}

	result, err := h.listShelfBooks.Execute(c.Request.Context(), browse.ListShelfBooksRequest{
		ShelfID: c.Param("id"),
		Offset:  req.Offset,
		Limit:   req.Limit,
		Filters: req.Filters(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ShelfBooksResponse{
		List:       dto.NewBookList(result.Books),
		Count:      result.Count,
		HasResults: result.HasResults,
		Fetched:    result.Fetched,
		Offset:     result.Offset,
		Limit:      result.Limit,
		HasMore:    result.HasMore,
	})
}
