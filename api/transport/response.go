package transport

// Success is the one-key acknowledgment body. Responses carry either a
// success key or an error key, never both.
type Success struct {
	Message string `json:"success"`
}

// Error is the one-key failure body.
type Error struct {
	Message string `json:"error"`
}

func NewSuccess(message string) Success {
	return Success{Message: message}
}

func NewError(message string) Error {
	return Error{Message: message}
}
