package shelf

// PaginationParams 分页参数
// Offset和Limit均为可选，nil表示使用上游接口的默认值（不发送该参数）
type PaginationParams struct {
	Offset *int
	Limit  *int
}

// Page 构造完整的分页参数
func Page(offset, limit int) PaginationParams {
	return PaginationParams{Offset: &offset, Limit: &limit}
}
