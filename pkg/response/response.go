package response

// JSON is the envelope used by middleware and a few handlers that need an
// error code alongside the message.
type JSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(code, message string, data any) JSON {
	return JSON{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data any) JSON {
	return JSON{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
