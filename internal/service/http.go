package service

import (
	"errors"
	"net/http"

	"github.com/nft-mint-gateway/internal/httputil"
)

// HTTPStatus maps an ErrorKind to its corresponding HTTP status code.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrGone:
		return http.StatusGone
	case ErrInternal:
		return http.StatusInternalServerError
	case ErrBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the tagged JSON error response for a service error.
// Anything that is not a *service.Error becomes a 500 with the raw message,
// matching the pipeline's catch-all policy for unexpected failures.
func RespondError(w http.ResponseWriter, err error) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		httputil.RespondTaggedError(w, svcErr.Kind.HTTPStatus(), svcErr.Code, svcErr.Message, svcErr.Details)
		return
	}
	httputil.RespondTaggedError(w, http.StatusInternalServerError, CodeInternal, err.Error(), nil)
}
