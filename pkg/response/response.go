package response

import "user-rest-service/pkg/pagination"

// Status discriminates the three envelope shapes.
type Status string

const (
	StatusSuccess Status = "success" // request handled, data returned
	StatusError   Status = "error"   // server-side or domain failure
	StatusFail    Status = "fail"    // client-input validation failure
)

// ErrorBody carries error information inside an error or fail envelope.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the uniform JSON body returned by every endpoint.
// Exactly one of Data and Error is populated, never both.
type Envelope struct {
	Status  Status     `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// DefaultSuccessMessage is used when a success envelope is built without
// an explicit message.
const DefaultSuccessMessage = "Operation successful"

// Success builds a success envelope wrapping data.
func Success(data any, message string) Envelope {
	if message == "" {
		message = DefaultSuccessMessage
	}
	return Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// Paginated builds a success envelope whose data is a pagination result.
func Paginated(items any, meta pagination.Meta, links pagination.Links, message string) Envelope {
	return Success(pagination.Result{
		Items: items,
		Meta:  meta,
		Links: links,
	}, message)
}

// Error builds an error envelope for server-side and domain failures.
func Error(message, code string, details any) Envelope {
	return Envelope{
		Status: StatusError,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// Fail builds a fail envelope, used for client-input validation failures.
func Fail(message string, details any) Envelope {
	return Envelope{
		Status:  StatusFail,
		Message: message,
		Error: &ErrorBody{
			Message: message,
			Details: details,
		},
	}
}
