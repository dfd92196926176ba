package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mittirang/mittirang-backend/internal/catalog"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/products?"+query, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(contextWithQuery(""))
	assert.Equal(t, PaginationParams{Page: 1, Limit: DefaultPageLimit, Sort: catalog.SortNewest}, p)

	p = GetPaginationParams(contextWithQuery("page=3&limit=5&sort=priceLow&search=+boot+"))
	assert.Equal(t, PaginationParams{Page: 3, Limit: 5, Sort: catalog.SortPriceLow, Search: "boot"}, p)

	p = GetPaginationParams(contextWithQuery("page=-2&limit=1000&sort=bogus"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)
	assert.Equal(t, catalog.SortNewest, p.Sort)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, PaginationParams{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, Paginate(items, PaginationParams{Page: 3, Limit: 2}))
	assert.Equal(t, []int{}, Paginate(items, PaginationParams{Page: 4, Limit: 2}))
}

func TestPaginate_HugePage(t *testing.T) {
	items := []int{1, 2, 3}

	assert.NotPanics(t, func() {
		assert.Equal(t, []int{}, Paginate(items, PaginationParams{Page: 5e17, Limit: 20}))
		assert.Equal(t, []int{}, Paginate(items, PaginationParams{Page: math.MaxInt, Limit: MaxPageLimit}))
	})
	assert.Equal(t, []int{}, Paginate(items, PaginationParams{Page: 0, Limit: 20}))
}

func TestCreatePaginationResult(t *testing.T) {
	r := CreatePaginationResult([]int{1}, 41, PaginationParams{Page: 2, Limit: 20})
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, int64(41), r.Total)
}
