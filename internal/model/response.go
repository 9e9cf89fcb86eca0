package model

// Response shapes follow the flat wire contract consumed by the frontend:
// successes carry a message plus fields, failures carry a single error string.

type ErrorResponse struct {
	Error string `json:"error"`
}

type SignupResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
