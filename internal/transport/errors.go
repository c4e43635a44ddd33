package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"funnelpay.com/app/internal/shared/apperr"
)

// apiErrorBody is the backend's error envelope. Message is best-effort; the
// status code alone decides the error kind.
type apiErrorBody struct {
	Error string `json:"error"`
}

func statusError(method, path string, status int, raw []byte) error {
	msg := ""
	var body apiErrorBody
	if json.Unmarshal(raw, &body) == nil {
		msg = body.Error
	}

	err := fmt.Errorf("%s %s: status %d: %s", method, path, status, msg)

	switch {
	case status == http.StatusNotFound:
		return &apperr.AppError{Kind: apperr.NotFound, PublicMsg: "Resource not found.", Err: err}
	case status == http.StatusBadRequest:
		return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: "Request rejected by the backend.", Err: err}
	default:
		return apperr.ProviderErr("Backend request failed.", err)
	}
}
