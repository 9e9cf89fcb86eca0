package apierror

type APIError struct {
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func New(message string, status int) *APIError {
	return &APIError{Message: message, HTTPStatus: status}
}
