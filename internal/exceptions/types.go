package exceptions

import (
	"errors"
	"fmt"
	"net/http"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

func (se *ServiceError) Unwrap() error {
	return se.Cause
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusNotFound,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusBadRequest,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

type UnauthorizedError struct{}

func (ue *UnauthorizedError) Error() string {
	return "Unauthorized"
}

func (ue *UnauthorizedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusUnauthorized,
		Cause:      ue,
	}
}

func Unauthorized() *UnauthorizedError {
	return &UnauthorizedError{}
}

func InternalServer(message string) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Cause:      errors.New(message),
	}
}

// StatusCode resolves the HTTP status for any error surfaced by a route.
func StatusCode(err error) int {
	var re RequestError
	if errors.As(err, &re) {
		return re.ToServiceError().StatusCode
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return http.StatusInternalServerError
}
