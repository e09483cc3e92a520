package common

import (
	"fmt"
	"net/http"
)

// ResourceType names the kind of entity referenced by a not-found/conflict
// error, e.g. "user", "pool", "pick".
type ResourceType string

const (
	UserResourceType       ResourceType = "user"
	SeasonResourceType     ResourceType = "season"
	PoolResourceType       ResourceType = "pool"
	MembershipResourceType ResourceType = "pool_membership"
	PickResourceType       ResourceType = "pick"
)

// ErrUnauthorized means the caller presented no valid credential.
type ErrUnauthorized struct{ message string }

func (e *ErrUnauthorized) Error() string { return e.message }

// ErrForbidden means the caller is authenticated but not allowed to perform
// the requested action on the requested resource.
type ErrForbidden struct{ message string }

func (e *ErrForbidden) Error() string { return e.message }

// ErrNotFound means the referenced resource does not exist.
type ErrNotFound struct{ message string }

func (e *ErrNotFound) Error() string { return e.message }

// ErrConflict means the request conflicts with the resource's current
// state (duplicate unique key, stale precondition, invalid transition).
type ErrConflict struct{ message string }

func (e *ErrConflict) Error() string { return e.message }

// ErrInvalidInput means the request body or parameters failed validation.
type ErrInvalidInput struct{ message string }

func (e *ErrInvalidInput) Error() string { return e.message }

// ErrBadRequest means the request was malformed independent of field-level
// validation (bad JSON, bad path parameter).
type ErrBadRequest struct{ message string }

func (e *ErrBadRequest) Error() string { return e.message }

// ErrRateLimited means the caller exceeded a throttling threshold (e.g.
// repeated failed logins).
type ErrRateLimited struct{ message string }

func (e *ErrRateLimited) Error() string { return e.message }

// ErrInternal means the server could not complete the request for a reason
// that is not the caller's fault (a cache invariant failed, a season
// referenced by a pool is missing, a store insert failed).
type ErrInternal struct{ message string }

func (e *ErrInternal) Error() string { return e.message }

func NewErrUnauthorized(messages ...string) error {
	msg := "unauthorized"
	if len(messages) > 0 && messages[0] != "" {
		msg = messages[0]
	}
	return &ErrUnauthorized{message: msg}
}

func NewErrForbidden(messages ...string) error {
	msg := "forbidden"
	if len(messages) > 0 && messages[0] != "" {
		msg = messages[0]
	}
	return &ErrForbidden{message: msg}
}

func NewErrAlreadyExists(resourceType ResourceType, fieldName string, value interface{}) error {
	return &ErrConflict{message: fmt.Sprintf("%s with %s %v already exists", resourceType, fieldName, value)}
}

func NewErrConflict(message string) error {
	return &ErrConflict{message: message}
}

func NewErrNotFound(resourceType ResourceType, fieldName string, value interface{}) error {
	return &ErrNotFound{message: fmt.Sprintf("%s with %s %v not found", resourceType, fieldName, value)}
}

func NewErrInvalidInput(message string) error {
	return &ErrInvalidInput{message: message}
}

func NewErrBadRequest(message string) error {
	return &ErrBadRequest{message: message}
}

func NewErrRateLimited(message string) error {
	return &ErrRateLimited{message: message}
}

func NewErrInternal(message string) error {
	return &ErrInternal{message: message}
}

func IsNotFoundError(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

func IsUnauthorizedError(err error) bool {
	_, ok := err.(*ErrUnauthorized)
	return ok
}

func IsForbiddenError(err error) bool {
	_, ok := err.(*ErrForbidden)
	return ok
}

func IsConflictError(err error) bool {
	_, ok := err.(*ErrConflict)
	return ok
}

func IsBadRequestError(err error) bool {
	_, ok := err.(*ErrBadRequest)
	return ok
}

func IsInvalidInputError(err error) bool {
	_, ok := err.(*ErrInvalidInput)
	return ok
}

func IsRateLimitedError(err error) bool {
	_, ok := err.(*ErrRateLimited)
	return ok
}

func IsInternalError(err error) bool {
	_, ok := err.(*ErrInternal)
	return ok
}

// StatusCodeFor maps a domain error to its HTTP status per the error
// taxonomy. Unrecognized errors map to 500.
func StatusCodeFor(err error) int {
	switch err.(type) {
	case *ErrUnauthorized:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrConflict:
		return http.StatusConflict
	case *ErrInvalidInput, *ErrBadRequest:
		return http.StatusBadRequest
	case *ErrRateLimited:
		return http.StatusTooManyRequests
	case *ErrInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
