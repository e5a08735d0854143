package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusBadGateway     = http.StatusBadGateway
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrNotFound           = errors.New("Resource not found")
	ErrSessionNotFound    = errors.New("Invoice session not found")
	ErrItemNotFound       = errors.New("Line item not found on the invoice")
	ErrProductNotFound    = errors.New("Product not found in the catalog")
	ErrInvalidQuantity    = errors.New("Quantity must be a positive integer")
	ErrEditInProgress     = errors.New("An image edit is already in progress for this line item")
	ErrGatewayUnavailable = errors.New("Image service is unavailable")
	ErrEmptyResult        = errors.New("Image service returned no image")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrNotFound:           ErrStatusNotFound,
	ErrSessionNotFound:    ErrStatusNotFound,
	ErrItemNotFound:       ErrStatusNotFound,
	ErrProductNotFound:    ErrStatusNotFound,
	ErrInvalidQuantity:    ErrStatusClient,
	ErrEditInProgress:     ErrStatusConflict,
	ErrGatewayUnavailable: ErrStatusBadGateway,
	ErrEmptyResult:        ErrStatusBadGateway,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
