package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	Invalid              Kind = "invalid"
	NotFound             Kind = "not_found"
	Tax                  Kind = "tax_calculation"
	UnsupportedProvider  Kind = "unsupported_provider"
	Provider             Kind = "provider_request"
	AgreementCapture     Kind = "agreement_capture"
	PaymentFromAgreement Kind = "payment_from_agreement"
	Internal             Kind = "internal"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

// Constructors (PublicMsg should stay short and safe)
func InvalidErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Invalid, PublicMsg: publicMsg, Fields: fields}
}
func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}
func TaxErr(err error) *AppError {
	return &AppError{Kind: Tax, PublicMsg: "Tax calculation failed.", Err: err}
}
func UnsupportedProviderErr(source string) *AppError {
	return &AppError{Kind: UnsupportedProvider, PublicMsg: "Payment source not supported: " + source}
}
func ProviderErr(publicMsg string, err error) *AppError {
	return &AppError{Kind: Provider, PublicMsg: publicMsg, Err: err}
}
func AgreementCaptureErr(err error) *AppError {
	return &AppError{Kind: AgreementCapture, PublicMsg: "Billing agreement could not be captured.", Err: err}
}
func PaymentFromAgreementErr(err error) *AppError {
	return &AppError{Kind: PaymentFromAgreement, PublicMsg: "Payment from billing agreement failed.", Err: err}
}

// Wrap: internal error without a public message (default 500)
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: Internal, PublicMsg: "An unexpected error occurred.", Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsKind(err error, k Kind) bool {
	if ae, ok := As(err); ok {
		return ae.Kind == k
	}
	return false
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Invalid:
			return http.StatusBadRequest
		case NotFound:
			return http.StatusNotFound
		case UnsupportedProvider:
			return http.StatusUnprocessableEntity
		case Tax, Provider, AgreementCapture, PaymentFromAgreement:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return "An unexpected error occurred."
}
