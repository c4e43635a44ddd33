package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsAndUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := ProviderErr("Provider is down.", inner)

	assert.True(t, IsKind(err, Provider))
	assert.False(t, IsKind(err, NotFound))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Provider is down.", PublicMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidErr("bad", nil)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundErr("gone")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(UnsupportedProviderErr("stripe")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(TaxErr(errors.New("x"))))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(AgreementCaptureErr(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestPublicMessageFallback(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred.", PublicMessage(errors.New("internal detail")))
}
