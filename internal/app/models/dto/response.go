package dto

import "time"

// APIResponse is the envelope of every API reply
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Data: data, Timestamp: time.Now()}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes the page returned by a list endpoint
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"48"`
}

// PaginatedResponse is a page of items plus its pagination info
type PaginatedResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
