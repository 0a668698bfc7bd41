package httperr

import "errors"

// Error codes crossing the tool boundary. The reasoning loop keys its
// recovery prompts off these, so they are part of the contract.
const (
	CodeAgentNotFound        = "agent_not_found"
	CodeNoAvailability       = "no_availability"
	CodeInvalidArguments     = "invalid_arguments"
	CodeConflict             = "conflict"
	CodeRetrievalUnavailable = "retrieval_unavailable"
	CodeUnknownTool          = "unknown_tool"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code of err, or "" when err is not a
// BusinessError.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// MessageOf returns the human-readable message of err, falling back to
// err.Error() for non-business errors.
func MessageOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		return be.Code
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
