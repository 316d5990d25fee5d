package httputil

import (
	"strconv"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination holds the validated page parameters of a list request
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the pagination metadata of list responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// List is the envelope of every paginated response
type List[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewList wraps items with their pagination metadata.
func NewList[T any](items []T, p Pagination, total int64) List[T] {
	if items == nil {
		items = []T{}
	}
	return List[T]{
		Items:      items,
		Pagination: PaginationResponse{Page: p.Page, Limit: p.Limit, Total: total},
	}
}

// GetPagination reads page and limit from the query string. Out of range
// values answer 400 and return false.
func GetPagination(c *gin.Context) (Pagination, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		apierror.BadRequest(c, "page must be an integer >= 1")
		return Pagination{}, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit < 1 || limit > MaxPageSize {
		apierror.BadRequest(c, "limit must be an integer between 1 and 100")
		return Pagination{}, false
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}, true
}

// Apply adds OFFSET and LIMIT to q.
func (p Pagination) Apply(q *gorm.DB) *gorm.DB {
	return q.Offset(p.Offset).Limit(p.Limit)
}
