// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

// ErrorType marks error responses of the node API.
const ErrorType = "error"

type (
	RequestTransact struct {
		Recipient string `json:"recipient"`
		Amount    int64  `json:"amount"`
	}

	ResponseError struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
)

// NewResponseError returns an error response carrying msg.
func NewResponseError(msg string) ResponseError {
	return ResponseError{Type: ErrorType, Message: msg}
}
