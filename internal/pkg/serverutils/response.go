package serverutils

// ErrorEnvelope is the JSON shape for failed requests. Successful requests
// return their DTOs directly; the frontend depends on those exact shapes.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ErrorResponse(message string) ErrorEnvelope {
	return ErrorEnvelope{
		Success: false,
		Message: message,
	}
}
