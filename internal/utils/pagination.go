package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaginationParams struct {
	Page      int    `json:"page" form:"page"`
	Limit     int    `json:"limit" form:"limit"`
	SortBy    string `json:"sortBy" form:"sortBy"`
	SortOrder string `json:"sortOrder" form:"sortOrder"`
	Search    string `json:"search" form:"search"`
}

// Pagination is the page block returned with every list response.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// QueryOptions carries skip, limit and sort down to a repository.
type QueryOptions struct {
	Skip      int64
	Limit     int64
	SortField string
	SortOrder int
}

func GetPaginationParams(c *gin.Context) *PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	sortBy := c.DefaultQuery("sortBy", "createdAt")
	sortOrder := c.DefaultQuery("sortOrder", "desc")

	return NormalizePagination(&PaginationParams{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Search:    c.Query("search"),
	})
}

// NormalizePagination clamps page and limit and defaults the sort.
func NormalizePagination(p *PaginationParams) *PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < MinPageSize {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = "desc"
	}
	return p
}

func (p *PaginationParams) GetSkip() int {
	return (p.Page - 1) * p.Limit
}

// SortDirection returns 1 for asc and -1 for desc.
func (p *PaginationParams) SortDirection() int {
	if p.SortOrder == "asc" {
		return 1
	}
	return -1
}

// QueryOptions builds repository options for one page sorted on field.
func (p *PaginationParams) QueryOptions(field string) *QueryOptions {
	return &QueryOptions{
		Skip:      int64(p.GetSkip()),
		Limit:     int64(p.Limit),
		SortField: field,
		SortOrder: p.SortDirection(),
	}
}

// FindOptions converts the options into mongo find options. A zero limit
// means no limit. The _id tiebreak keeps paging stable.
func (o *QueryOptions) FindOptions() *options.FindOptions {
	opts := options.Find()
	if o == nil {
		return opts
	}
	if o.Skip > 0 {
		opts.SetSkip(o.Skip)
	}
	if o.Limit > 0 {
		opts.SetLimit(o.Limit)
	}
	if o.SortField != "" {
		order := o.SortOrder
		if order == 0 {
			order = -1
		}
		sort := bson.D{{Key: o.SortField, Value: order}}
		if o.SortField != "_id" {
			sort = append(sort, bson.E{Key: "_id", Value: order})
		}
		opts.SetSort(sort)
	}
	return opts
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Current: page,
		Pages:   PageCount(total, limit),
		Total:   total,
		Limit:   limit,
	}
}

func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
