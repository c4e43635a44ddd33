package payments

import (
	"context"

	"funnelpay.com/app/internal/shared/apperr"
	"funnelpay.com/app/internal/shared/validate"
)

// suffix distinguishing a verification charge from the transaction it
// validates against
const verificationOrderSuffix = "-re-1"

// StartPaypalAgreement requests a billing-agreement token for the session.
// The returned token goes through PayPal's external approval redirect
// before it can be captured.
func (s *Service) StartPaypalAgreement(ctx context.Context, sessionID string, setup AgreementSetup) (AgreementToken, error) {
	if sessionID == "" {
		return AgreementToken{}, apperr.InvalidErr("Session id is required.", nil)
	}
	tok, err := s.gateway.StartAgreement(ctx, sessionID, setup)
	if err != nil {
		return AgreementToken{}, err
	}
	return tok, nil
}

type CaptureAgreementInput struct {
	SessionID string `json:"sessionId" validate:"required"`
	Token     string `json:"token" validate:"required"`
}

// CapturePaypalAgreement confirms the approved billing agreement, then
// immediately charges from it. The two sub-steps fail with distinct kinds:
// once the agreement is confirmed, a failure in the payment step must not
// be retried as a fresh agreement, so callers have to be able to tell the
// phases apart. There is no rollback of a confirmed agreement.
func (s *Service) CapturePaypalAgreement(ctx context.Context, in CaptureAgreementInput) (ChargeResult, error) {
	if fields := validate.Struct(&in); fields != nil {
		return ChargeResult{}, apperr.InvalidErr("Invalid capture input.", fields)
	}

	ag, err := s.gateway.CaptureAgreement(ctx, in.Token)
	if err != nil {
		return ChargeResult{}, apperr.AgreementCaptureErr(err)
	}

	res, err := s.gateway.PayFromAgreement(ctx, in.SessionID, ag.ID)
	if err != nil {
		return ChargeResult{}, apperr.PaymentFromAgreementErr(err)
	}
	return res, nil
}

// VerificationRequest carries the order being validated and the nominal
// amount in major currency units.
type VerificationRequest struct {
	OrderID string  `json:"orderId" validate:"required"`
	Amount  float64 `json:"amount" validate:"gt=0"`
}

// verificationCharge is the shaped request the verification endpoints
// accept: minor-unit integer amount, suffixed order id.
type verificationCharge struct {
	OrderID string `json:"orderId"`
	Amount  int    `json:"amount"`
}

// shapeVerification converts the amount to integer minor units, truncating
// toward zero (19.999 → 1999) per the provider's integer-cents contract,
// and appends the verification suffix to the order id.
func shapeVerification(req VerificationRequest) verificationCharge {
	return verificationCharge{
		OrderID: req.OrderID + verificationOrderSuffix,
		Amount:  int(req.Amount * 100),
	}
}

// VerifyChargeRefund charges a nominal amount and refunds it immediately,
// confirming the stored instrument is chargeable without a net charge.
func (s *Service) VerifyChargeRefund(ctx context.Context, req VerificationRequest) (ChargeResult, error) {
	if fields := validate.Struct(&req); fields != nil {
		return ChargeResult{}, apperr.InvalidErr("Invalid verification input.", fields)
	}
	return s.gateway.ChargeAndRefund(ctx, shapeVerification(req))
}

// VerifyChargeRefundDeferred is the variant where the refund is scheduled
// rather than immediate. The distinction is opaque to this layer; only the
// endpoint differs.
func (s *Service) VerifyChargeRefundDeferred(ctx context.Context, req VerificationRequest) (ChargeResult, error) {
	if fields := validate.Struct(&req); fields != nil {
		return ChargeResult{}, apperr.InvalidErr("Invalid verification input.", fields)
	}
	return s.gateway.ChargeAndRefundDeferred(ctx, shapeVerification(req))
}
