package handler

import (
	"github.com/labstack/echo/v4"
)

// Pagination describes the page window of a list response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes the page window for a list of total items. The
// page/limit normalization mirrors the service layer so the reported window
// matches the rows actually returned.
func NewPagination(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// envelope is the canonical success envelope for all API responses.
type envelope struct {
	Status     string      `json:"status"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Status: "success", Data: data})
}

func respondPage(c echo.Context, code int, data any, p *Pagination) error {
	return c.JSON(code, envelope{Status: "success", Data: data, Pagination: p})
}
