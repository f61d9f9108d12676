package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Object storage & upstream service errors
var (
	ErrStorageUpload  = errors.New("storage upload failed")
	ErrPartialFailure = errors.New("partial failure")
	ErrPageLoading    = errors.New("page already loading")
)

func NewStorageError(operation, object string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUpload,
		Details:    fmt.Sprintf("Failed to %s %s", operation, object),
		Cause:      cause,
		Field:      "storage",
	}
}

// NewPartialFailureError reports an operation that stopped part way and
// left completed steps behind.
func NewPartialFailureError(operation string, completedSteps []string, cause error) *ApiErr {
	details := fmt.Sprintf("%s failed", operation)
	if len(completedSteps) > 0 {
		details = fmt.Sprintf("%s failed after completing: %s", operation, strings.Join(completedSteps, ", "))
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrPartialFailure,
		Details:    details,
		Cause:      cause,
		Field:      "partial_failure",
	}
}

func NewPageLoadingError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrPageLoading,
		kind:       ErrConflict,
		Hint:       "Still loading, please wait",
	}
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageUpload)
}

func IsPartialFailureError(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}

