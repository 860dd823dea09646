package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ErrorResponse(message string) FailureResponse {
	return FailureResponse{
		Success: false,
		Message: message,
	}
}
