package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(1, 10, 25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = CalculateSliceIndices(3, 10, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = CalculateSliceIndices(4, 10, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(5), page.Pagination.TotalItems)

	empty := Paginate([]int{}, 1, 10)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 1, empty.Pagination.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"explicit", "page=3&size=5", 3, 5},
		{"out of range", "page=-1&size=100000", DefaultPage, DefaultPageSize},
		{"not numbers", "page=abc&size=xyz", DefaultPage, DefaultPageSize},
		{"absent", "", DefaultPage, DefaultPageSize},
		{"max size", "size=200", DefaultPage, MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/students?"+tc.query, nil)
			page, size := ParsePaginationParams(c)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantSize, size)
		})
	}
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", FormatDate(d))
	assert.Equal(t, 5*time.Second, ParseDuration("bogus", 5*time.Second))
}
