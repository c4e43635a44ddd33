package payments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnelpay.com/app/internal/modules/carts"
	"funnelpay.com/app/internal/modules/sessions"
	"funnelpay.com/app/internal/modules/tax"
	"funnelpay.com/app/internal/shared/apperr"
)

const testSessionID = "0ae0dc5b-9f00-4673-9f0b-d7b0e42d2b6f" // 36 chars

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSession() sessions.Session {
	return sessions.Session{
		ID:          testSessionID,
		CountryCode: "US",
		State:       "NY",
		ExtraData:   sessions.ExtraData{Currency: "USD"},
	}
}

func newTestService(se *fakeSessions, ca *fakeCarts, ta *fakeTax, hi *fakeHistory, gw *fakeGateway) *Service {
	return NewService(se, ca, ta, hi, gw, nil, testLogger())
}

func TestUpsellCharge_PrimerDispatch(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{calc: tax.Calculation{TaxAmount: 2.5, AmountWithTax: 27.5, TaxPercent: 10}}
	hi := &fakeHistory{ref: PaymentReference{Provider: "primer"}}
	gw := &fakeGateway{primerRes: ChargeResult{ID: "ch_1", Status: "authorized"}}
	svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

	meta := map[string]any{"funnel": "step-2"}
	res, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      25,
		CaptureMode: CaptureAuthorize,
		Metadata:    meta,
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_1", res.ID)

	require.Equal(t, 1, gw.primerCalls)
	req := gw.lastPrimer
	assert.Equal(t, testSessionID, req.CustomerID)
	assert.Equal(t, "USD", req.Currency)
	assert.Equal(t, 27.5, req.Amount, "must charge the tax-inclusive amount")
	assert.True(t, req.ManualCapture)
	assert.Equal(t, 2.5, req.Metadata["tx"])
	assert.Equal(t, float64(10), req.Metadata["txp"])
	assert.Equal(t, "step-2", req.Metadata["funnel"])

	// caller's metadata is never mutated
	_, hasTx := meta["tx"]
	assert.False(t, hasTx)

	assert.Regexp(t, regexp.MustCompile(`^`+testSessionID+`-up-\d{4}$`), req.OrderID)

	// tax was delegated with the session's jurisdiction
	assert.Equal(t, 1, ta.calls)
	assert.Equal(t, float64(25), ta.lastAmount)
	assert.Equal(t, "US", ta.lastCountry)
	assert.Equal(t, "NY", ta.lastState)
}

func TestUpsellCharge_PaypalFamilyDispatch(t *testing.T) {
	for _, tag := range []string{"paypal", "paypal-eu", "classic-paypal"} {
		t.Run(tag, func(t *testing.T) {
			se := &fakeSessions{sess: testSession()}
			ta := &fakeTax{calc: tax.Calculation{TaxAmount: 5, AmountWithTax: 55, TaxPercent: 10}}
			hi := &fakeHistory{ref: PaymentReference{Provider: tag, ChargeID: "PAY-123"}}
			gw := &fakeGateway{paypalRes: ChargeResult{ID: "ch_pp"}}
			svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

			_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
				ReferenceID: testSessionID,
				Amount:      50,
				CaptureMode: CaptureImmediate,
			})
			require.NoError(t, err)

			require.Equal(t, 1, gw.paypalCalls)
			assert.Zero(t, gw.primerCalls)
			req := gw.lastPaypal
			assert.Equal(t, "PAY-123", req.ChargeID)
			assert.Equal(t, "Charge", req.Description, "description defaults when not given")
			assert.Equal(t, PaypalIntentCapture, req.Intent)
			assert.Equal(t, 55.0, req.Total)
			assert.Equal(t, 5.0, req.Metadata["tx"])
		})
	}
}

func TestUpsellCharge_PaypalAuthorizeIntent(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{calc: tax.Calculation{AmountWithTax: 10}}
	hi := &fakeHistory{ref: PaymentReference{Provider: "paypal", ChargeID: "PAY-9"}}
	gw := &fakeGateway{}
	svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      10,
		CaptureMode: CaptureAuthorize,
		Description: "Bump offer",
	})
	require.NoError(t, err)
	assert.Equal(t, PaypalIntentAuthorize, gw.lastPaypal.Intent)
	assert.Equal(t, "Bump offer", gw.lastPaypal.Description)
}

func TestUpsellCharge_SkipTax(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{}
	hi := &fakeHistory{ref: PaymentReference{Provider: "primer"}}
	gw := &fakeGateway{}
	svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      19.99,
		Metadata:    map[string]any{"skipTax": true},
	})
	require.NoError(t, err)

	assert.Zero(t, ta.calls, "skipTax must not hit the tax calculator")
	assert.Equal(t, 19.99, gw.lastPrimer.Amount)
	assert.Equal(t, float64(0), gw.lastPrimer.Metadata["tx"])
	assert.Equal(t, float64(0), gw.lastPrimer.Metadata["txp"])
}

func TestUpsellCharge_TaxFailure(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{err: apperr.TaxErr(errors.New("no data"))}
	hi := &fakeHistory{ref: PaymentReference{Provider: "primer"}}
	gw := &fakeGateway{}
	svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Tax))
	assert.Zero(t, gw.primerCalls, "no charge is attempted after a tax failure")
}

func TestUpsellCharge_NoPriorPayment(t *testing.T) {
	hi := &fakeHistory{err: apperr.NotFoundErr("nothing")}
	gw := &fakeGateway{}
	svc := newTestService(&fakeSessions{sess: testSession()}, &fakeCarts{}, &fakeTax{}, hi, gw)

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.ErrorIs(t, err, ErrNoPriorPayment)
	assert.Zero(t, gw.primerCalls)
	assert.Zero(t, gw.paypalCalls)
}

func TestUpsellCharge_SessionNotFound(t *testing.T) {
	se := &fakeSessions{fetchErr: apperr.NotFoundErr("gone")}
	hi := &fakeHistory{ref: PaymentReference{Provider: "primer"}}
	svc := newTestService(se, &fakeCarts{}, &fakeTax{}, hi, &fakeGateway{})

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpsellCharge_UnsupportedProvider(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{calc: tax.Calculation{AmountWithTax: 11}}
	hi := &fakeHistory{ref: PaymentReference{Provider: "stripe"}}
	gw := &fakeGateway{}
	svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.UnsupportedProvider))
	assert.Zero(t, gw.primerCalls)
	assert.Zero(t, gw.paypalCalls)
}

func TestUpsellCharge_OrderIDPassthrough(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{calc: tax.Calculation{AmountWithTax: 12}}
	hi := &fakeHistory{ref: PaymentReference{Provider: "primer"}}
	gw := &fakeGateway{}
	svc := newTestService(se, &fakeCarts{}, ta, hi, gw)

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{
		ReferenceID: testSessionID,
		Amount:      10,
		OrderID:     "my-custom-order",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-custom-order", gw.lastPrimer.OrderID, "caller-supplied order id passes through unmodified")
}

func TestUpsellCharge_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeSessions{}, &fakeCarts{}, &fakeTax{}, &fakeHistory{}, &fakeGateway{})

	_, err := svc.UpsellCharge(context.Background(), UpsellChargeInput{})
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Contains(t, ae.Fields, "referenceId")
	assert.Contains(t, ae.Fields, "amount")
}

func TestUpsellChargeFromCart(t *testing.T) {
	cartRef := testSessionID + "-ct1" // 40 chars, trailing 4 arbitrary
	require.Len(t, cartRef, 40)

	se := &fakeSessions{sess: testSession()}
	ta := &fakeTax{calc: tax.Calculation{TaxAmount: 125, AmountWithTax: 1375, TaxPercent: 10}}
	hi := &fakeHistory{ref: PaymentReference{Provider: "primer"}}
	gw := &fakeGateway{}
	ca := &fakeCarts{cart: carts.Cart{
		ID: cartRef,
		Items: []carts.LineItem{
			{Product: carts.Product{ID: "p1", Price: 500}, Quantity: 2},
			{Product: carts.Product{ID: "p2", Price: 250}, Quantity: 1},
		},
	}}
	svc := newTestService(se, ca, ta, hi, gw)

	_, err := svc.UpsellChargeFromCart(context.Background(), CartChargeInput{CartRef: cartRef})
	require.NoError(t, err)

	assert.Equal(t, float64(1250), ta.lastAmount, "amount is the literal line-item sum")
	assert.Equal(t, cartRef, gw.lastPrimer.OrderID, "order id is the full cart reference, not synthesized")
	assert.Equal(t, testSessionID, gw.lastPrimer.CustomerID, "session id is the first 36 chars of the cart reference")
}

func TestUpsellChargeFromCart_FetchError(t *testing.T) {
	ca := &fakeCarts{fetchErr: apperr.NotFoundErr("no cart")}
	svc := newTestService(&fakeSessions{}, ca, &fakeTax{}, &fakeHistory{}, &fakeGateway{})

	_, err := svc.UpsellChargeFromCart(context.Background(), CartChargeInput{CartRef: strings.Repeat("a", 40)})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestConfirmPayment_Order(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ca := &fakeCarts{cart: carts.Cart{ID: "cart-1"}}
	svc := newTestService(se, ca, &fakeTax{}, &fakeHistory{}, &fakeGateway{})

	_, err := svc.ConfirmPayment(context.Background(), ConfirmPaymentInput{
		CartID:      "cart-1",
		SessionID:   testSessionID,
		CartPayload: map[string]any{"total": 1250},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ca.paidCalls)
	assert.Equal(t, "cart-1", ca.paidID)
	assert.Equal(t, 1, se.markCalls)
}

func TestConfirmPayment_CartFailureBlocksSession(t *testing.T) {
	se := &fakeSessions{sess: testSession()}
	ca := &fakeCarts{paidErr: apperr.ProviderErr("down", errors.New("boom"))}
	svc := newTestService(se, ca, &fakeTax{}, &fakeHistory{}, &fakeGateway{})

	_, err := svc.ConfirmPayment(context.Background(), ConfirmPaymentInput{
		CartID:    "cart-1",
		SessionID: testSessionID,
	})
	require.Error(t, err)
	assert.Equal(t, 1, ca.paidCalls)
	assert.Zero(t, se.markCalls, "session must never be marked purchased when the cart call fails")
}
