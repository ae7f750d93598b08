package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads the page and limit query parameters, falling back to
// the defaults when a value is missing or not a positive number.
func ParsePagination(ctx *gin.Context) Pagination {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func TotalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
