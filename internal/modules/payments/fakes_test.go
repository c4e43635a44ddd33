package payments

import (
	"context"

	"funnelpay.com/app/internal/modules/carts"
	"funnelpay.com/app/internal/modules/sessions"
	"funnelpay.com/app/internal/modules/tax"
)

type fakeSessions struct {
	sess      sessions.Session
	fetchErr  error
	markErr   error
	markCalls int
}

func (f *fakeSessions) FetchSession(_ context.Context, id string) (sessions.Session, error) {
	if f.fetchErr != nil {
		return sessions.Session{}, f.fetchErr
	}
	return f.sess, nil
}

func (f *fakeSessions) MarkPurchased(_ context.Context, id string) error {
	f.markCalls++
	return f.markErr
}

type fakeCarts struct {
	cart      carts.Cart
	fetchErr  error
	paidErr   error
	paidCalls int
	paidID    string
}

func (f *fakeCarts) FetchCart(_ context.Context, id string) (carts.Cart, error) {
	if f.fetchErr != nil {
		return carts.Cart{}, f.fetchErr
	}
	return f.cart, nil
}

func (f *fakeCarts) MarkPaid(_ context.Context, id string, payload map[string]any) (carts.Cart, error) {
	f.paidCalls++
	f.paidID = id
	if f.paidErr != nil {
		return carts.Cart{}, f.paidErr
	}
	return f.cart, nil
}

type fakeTax struct {
	calc        tax.Calculation
	err         error
	calls       int
	lastAmount  float64
	lastCountry string
	lastState   string
}

func (f *fakeTax) Calculate(_ context.Context, amount float64, countryCode, state string) (tax.Calculation, error) {
	f.calls++
	f.lastAmount = amount
	f.lastCountry = countryCode
	f.lastState = state
	if f.err != nil {
		return tax.Calculation{}, f.err
	}
	return f.calc, nil
}

type fakeHistory struct {
	ref PaymentReference
	err error
}

func (f *fakeHistory) FirstPayment(_ context.Context, referenceID string) (PaymentReference, error) {
	if f.err != nil {
		return PaymentReference{}, f.err
	}
	return f.ref, nil
}

type fakeGateway struct {
	primerCalls int
	lastPrimer  PrimerChargeRequest
	primerRes   ChargeResult
	primerErr   error

	paypalCalls int
	lastPaypal  PaypalChargeRequest
	paypalRes   ChargeResult
	paypalErr   error

	startCalls int
	startRes   AgreementToken
	startErr   error

	captureCalls int
	captureRes   Agreement
	captureErr   error

	payCalls         int
	lastPaySession   string
	lastPayAgreement string
	payRes           ChargeResult
	payErr           error

	verifyCalls int
	lastVerify  verificationCharge
	verifyRes   ChargeResult
	verifyErr   error

	verifyDefCalls int
	lastVerifyDef  verificationCharge
}

func (f *fakeGateway) ChargePrimer(_ context.Context, req PrimerChargeRequest) (ChargeResult, error) {
	f.primerCalls++
	f.lastPrimer = req
	return f.primerRes, f.primerErr
}

func (f *fakeGateway) ChargePaypal(_ context.Context, req PaypalChargeRequest) (ChargeResult, error) {
	f.paypalCalls++
	f.lastPaypal = req
	return f.paypalRes, f.paypalErr
}

func (f *fakeGateway) StartAgreement(_ context.Context, sessionID string, setup AgreementSetup) (AgreementToken, error) {
	f.startCalls++
	return f.startRes, f.startErr
}

func (f *fakeGateway) CaptureAgreement(_ context.Context, token string) (Agreement, error) {
	f.captureCalls++
	return f.captureRes, f.captureErr
}

func (f *fakeGateway) PayFromAgreement(_ context.Context, sessionID, agreementID string) (ChargeResult, error) {
	f.payCalls++
	f.lastPaySession = sessionID
	f.lastPayAgreement = agreementID
	return f.payRes, f.payErr
}

func (f *fakeGateway) ChargeAndRefund(_ context.Context, req verificationCharge) (ChargeResult, error) {
	f.verifyCalls++
	f.lastVerify = req
	return f.verifyRes, f.verifyErr
}

func (f *fakeGateway) ChargeAndRefundDeferred(_ context.Context, req verificationCharge) (ChargeResult, error) {
	f.verifyDefCalls++
	f.lastVerifyDef = req
	return f.verifyRes, f.verifyErr
}
