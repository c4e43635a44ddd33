package payments

import (
	"context"

	"funnelpay.com/app/internal/transport"
)

// Gateway wraps the backend's payment endpoints: history lookup, the two
// provider charge adapters, the PayPal billing-agreement pair and the
// charge-and-refund verification endpoints.
type Gateway struct {
	api *transport.Client
}

func NewGateway(api *transport.Client) *Gateway {
	return &Gateway{api: api}
}

func (g *Gateway) FirstPayment(ctx context.Context, referenceID string) (PaymentReference, error) {
	var ref PaymentReference
	if err := g.api.Get(ctx, "/v1/payments/"+referenceID+"/first", &ref); err != nil {
		return PaymentReference{}, err
	}
	return ref, nil
}

func (g *Gateway) ChargePrimer(ctx context.Context, req PrimerChargeRequest) (ChargeResult, error) {
	var res ChargeResult
	if err := g.api.Post(ctx, "/v1/charges/primer", req, &res); err != nil {
		return ChargeResult{}, err
	}
	return res, nil
}

func (g *Gateway) ChargePaypal(ctx context.Context, req PaypalChargeRequest) (ChargeResult, error) {
	var res ChargeResult
	if err := g.api.Post(ctx, "/v1/charges/paypal", req, &res); err != nil {
		return ChargeResult{}, err
	}
	return res, nil
}

func (g *Gateway) StartAgreement(ctx context.Context, sessionID string, setup AgreementSetup) (AgreementToken, error) {
	var tok AgreementToken
	if err := g.api.Post(ctx, "/v1/sessions/"+sessionID+"/paypal/agreements", setup, &tok); err != nil {
		return AgreementToken{}, err
	}
	return tok, nil
}

func (g *Gateway) CaptureAgreement(ctx context.Context, token string) (Agreement, error) {
	var ag Agreement
	if err := g.api.Post(ctx, "/v1/paypal/agreements/"+token+"/capture", nil, &ag); err != nil {
		return Agreement{}, err
	}
	return ag, nil
}

type payFromAgreementRequest struct {
	AgreementID string `json:"agreementId"`
}

func (g *Gateway) PayFromAgreement(ctx context.Context, sessionID, agreementID string) (ChargeResult, error) {
	var res ChargeResult
	err := g.api.Post(ctx, "/v1/sessions/"+sessionID+"/paypal/pay", payFromAgreementRequest{AgreementID: agreementID}, &res)
	if err != nil {
		return ChargeResult{}, err
	}
	return res, nil
}

func (g *Gateway) ChargeAndRefund(ctx context.Context, req verificationCharge) (ChargeResult, error) {
	var res ChargeResult
	if err := g.api.Post(ctx, "/v1/payments/verify", req, &res); err != nil {
		return ChargeResult{}, err
	}
	return res, nil
}

func (g *Gateway) ChargeAndRefundDeferred(ctx context.Context, req verificationCharge) (ChargeResult, error) {
	var res ChargeResult
	if err := g.api.Post(ctx, "/v1/payments/verify/deferred", req, &res); err != nil {
		return ChargeResult{}, err
	}
	return res, nil
}
