package controllers

import (
	"net/http"

	"github.com/fit-lynq/api-go/services"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// statusForError maps a service error kind to an HTTP status.
func statusForError(err error) int {
	switch services.KindOf(err) {
	case services.KindInvalidArgument:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusServiceUnavailable
	}
}
