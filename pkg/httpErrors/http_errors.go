package httpErrors

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Error kinds. Lower layers wrap these with pkg/errors so the delivery
// layer can map them with errors.Is instead of sniffing message text.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTimeout    = errors.New("timeout")
	ErrUpstream   = errors.New("upstream provider error")
	ErrStorage    = errors.New("storage error")
)

type RestErr interface {
	Status() int
	Error() string
}

type RestError struct {
	ErrStatus int    `json:"status"`
	ErrError  string `json:"error"`
}

func (e RestError) Status() int {
	return e.ErrStatus
}

func (e RestError) Error() string {
	return e.ErrError
}

func NewRestError(status int, err string) RestErr {
	return RestError{
		ErrStatus: status,
		ErrError:  err,
	}
}

func NewBadRequestError(err string) RestErr {
	return RestError{
		ErrStatus: http.StatusBadRequest,
		ErrError:  err,
	}
}

func NewNotFoundError(err string) RestErr {
	return RestError{
		ErrStatus: http.StatusNotFound,
		ErrError:  err,
	}
}

func NewConflictError(err string) RestErr {
	return RestError{
		ErrStatus: http.StatusConflict,
		ErrError:  err,
	}
}

func NewGatewayTimeoutError(err string) RestErr {
	return RestError{
		ErrStatus: http.StatusGatewayTimeout,
		ErrError:  err,
	}
}

func NewInternalServerError(err string) RestErr {
	return RestError{
		ErrStatus: http.StatusInternalServerError,
		ErrError:  err,
	}
}

// ParseErrors maps an error kind to its REST representation. The wrapped
// message travels through untouched.
func ParseErrors(err error) RestErr {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(err.Error())
	case errors.Is(err, ErrConflict):
		return NewConflictError(err.Error())
	case errors.Is(err, ErrTimeout):
		return NewGatewayTimeoutError(err.Error())
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.As(err, &validationErrs):
		return NewBadRequestError(err.Error())
	default:
		return NewInternalServerError(err.Error())
	}
}

// ErrorResponse returns the status code and body for echo's c.JSON.
func ErrorResponse(err error) (int, interface{}) {
	restErr := ParseErrors(err)
	return restErr.Status(), restErr
}
