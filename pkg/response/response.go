package response

// ErrorBody is the JSON envelope returned for every failed request.
type ErrorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func Error(code, message string, details map[string]any) ErrorBody {
	return ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (b ErrorBody) WithRequestID(id string) ErrorBody {
	b.RequestID = id
	return b
}
