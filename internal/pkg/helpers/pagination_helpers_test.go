package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -2, 10, 0, 10},
		{"zero size uses default", 2, 0, 10, DefaultPageSize},
		{"oversized size uses default", 1, 500, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(42), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages, "empty result still has one page")

	past := NewPaginationInfo(15, 9, 10)
	assert.Equal(t, 2, past.CurrentPage, "page past the end clamps to last")
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (int, int) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+query, nil)
		return ParsePaginationParams(c)
	}

	page, size := parse("page=3&size=25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = parse("")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = parse("page=abc&size=-5")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	_, size = parse("size=1000")
	assert.Equal(t, DefaultPageSize, size)
}
