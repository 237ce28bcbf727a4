package domain

import "math"

// DefaultPageSize 管理端列表固定 10 条一页
const DefaultPageSize = 10

// Paging 计算出来的分页视图，不落库
type Paging struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Index    int   `json:"index"`
	MaxPage  int   `json:"maxPage"`
	PageSize int   `json:"pageSize"`
}

type PagedResult[T any] struct {
	Paging
	Items []T `json:"itemList"`
}

// NewPaging 把请求页码收紧到 [0, maxPage]，maxPage = total / pageSize。
// 负数页取绝对值后再收紧，index 永不为负、不超过 total
func NewPaging(total int64, page, pageSize int) Paging {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	if page < 0 {
		// -math.MinInt 取反仍是自身，单独归零
		if page == math.MinInt {
			page = 0
		} else {
			page = -page
		}
	}
	maxPage := int(total / int64(pageSize))
	if page > maxPage {
		page = maxPage
	}
	return Paging{
		Total:    total,
		Page:     page,
		Index:    page * pageSize,
		MaxPage:  maxPage,
		PageSize: pageSize,
	}
}
