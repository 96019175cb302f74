package utils

import (
	"math"
)

// Pagination is handed to the rendering layer to build page links.
type Pagination struct {
	Pages       []int `json:"pages"`
	TotalPage   int   `json:"totalPage"`
	TotalCount  int64 `json:"totalCount"`
	CurrentPage int   `json:"currentPage"`
	Prev        int   `json:"prev"`
	Next        int   `json:"next"`
}

// GetOffset converts a 1-indexed page into a row offset.
func GetOffset(limit, page int) int {
	return (page - 1) * limit
}

// GetPagination computes page links for a total row count. The current page
// is clamped into [1, totalPage].
func GetPagination(limit, page int, total int64) Pagination {
	totalPage := int(math.Ceil(float64(total) / float64(limit)))
	if totalPage == 0 {
		totalPage = 1
	}

	pages := make([]int, totalPage)
	for i := range pages {
		pages[i] = i + 1
	}

	currentPage := page
	if currentPage < 1 {
		currentPage = 1
	} else if currentPage > totalPage {
		currentPage = totalPage
	}

	prev := currentPage - 1
	if prev < 1 {
		prev = 1
	}
	next := currentPage + 1
	if next > totalPage {
		next = totalPage
	}

	return Pagination{
		Pages:       pages,
		TotalPage:   totalPage,
		TotalCount:  total,
		CurrentPage: currentPage,
		Prev:        prev,
		Next:        next,
	}
}
