package utils

// ErrorResponse is the JSON shape of every error the API returns.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// E builds an ErrorResponse, tolerating a nil cause.
func E(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
