// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mittirang/mittirang-backend/internal/catalog"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type PaginationParams struct {
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Sort   catalog.SortKey `json:"sort"`
	Search string          `json:"search"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	sort, _ := catalog.ParseSortKey(c.Query("sort"))

	// Validate and set defaults
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Search: strings.TrimSpace(c.Query("search")),
	}
}

// Paginate returns the requested page of an already ordered slice.
func Paginate[T any](items []T, params PaginationParams) []T {
	if params.Page < 1 || params.Limit < 1 || params.Page-1 > len(items)/params.Limit {
		return []T{}
	}
	offset := (params.Page - 1) * params.Limit
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+params.Limit, len(items))
	return items[offset:end]
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
