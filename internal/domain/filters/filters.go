package filters

import (
	"errors"
	"math"
	"strings"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

type Filters struct {
	Page         int      `schema:"page" json:"page" validate:"omitempty,gt=0,lte=10000000"`
	PageSize     int      `schema:"page_size" json:"page_size" validate:"omitempty,gt=0,lte=100"`
	Sort         string   `schema:"sort" json:"sort" validate:"omitempty,sortfield"`
	SortSafelist []string `schema:"-" json:"-"`
}

func (f *Filters) SortColumn() string {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return safeValue
		}
	}
	panic(errors.New("Unknown sort column: " + f.Sort))
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}

func (f *Filters) Limit() int {
	if f.PageSize == 0 {
		return DefaultPageSize
	}
	return f.PageSize
}

func (f *Filters) Offset() int {
	page := f.Page
	if page == 0 {
		page = DefaultPage
	}
	return (page - 1) * f.Limit()
}

type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records"`
}

func CalculateMetadata(totalRecords int, f Filters) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	page := f.Page
	if page == 0 {
		page = DefaultPage
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     f.Limit(),
		FirstPage:    1,
		LastPage:     int(math.Ceil(float64(totalRecords) / float64(f.Limit()))),
		TotalRecords: totalRecords,
	}
}
