package dto

// SuccessResponse is the envelope for all 2xx payloads.
type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data,omitempty"`
	Meta    *Meta `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for all error payloads.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Meta struct {
	Total    int64 `json:"total"`
	Returned int   `json:"returned"`
}

func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func Err(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}
