package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, rawQuery string) Pagination {
	t.Helper()

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return ParsePagination(ctx)
}

func TestParsePaginationDefaults(t *testing.T) {
	p := paginationFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestParsePaginationComputesOffset(t *testing.T) {
	p := paginationFor(t, "page=3&limit=5")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 10, p.Offset)
}

func TestParsePaginationFallsBackOnBadValues(t *testing.T) {
	for _, query := range []string{"page=abc&limit=xyz", "page=0&limit=-5", "page=-1"} {
		p := paginationFor(t, query)
		assert.Equal(t, 1, p.Page, query)
		assert.Equal(t, 10, p.Limit, query)
		assert.Equal(t, 0, p.Offset, query)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(12, 5))
}
