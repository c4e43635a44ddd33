package payments

import (
	"context"
	"log/slog"

	"funnelpay.com/app/internal/modules/analytics"
	"funnelpay.com/app/internal/modules/carts"
	"funnelpay.com/app/internal/modules/sessions"
	"funnelpay.com/app/internal/modules/tax"
	"funnelpay.com/app/internal/shared/apperr"
	"funnelpay.com/app/internal/shared/validate"
)

// metadata key the caller sets to opt out of tax calculation
const metaSkipTax = "skipTax"

type SessionAPI interface {
	FetchSession(ctx context.Context, id string) (sessions.Session, error)
	MarkPurchased(ctx context.Context, id string) error
}

type CartAPI interface {
	FetchCart(ctx context.Context, id string) (carts.Cart, error)
	MarkPaid(ctx context.Context, id string, payload map[string]any) (carts.Cart, error)
}

type TaxAPI interface {
	Calculate(ctx context.Context, amount float64, countryCode, state string) (tax.Calculation, error)
}

type PaymentHistory interface {
	FirstPayment(ctx context.Context, referenceID string) (PaymentReference, error)
}

type ProviderGateway interface {
	ChargePrimer(ctx context.Context, req PrimerChargeRequest) (ChargeResult, error)
	ChargePaypal(ctx context.Context, req PaypalChargeRequest) (ChargeResult, error)
	StartAgreement(ctx context.Context, sessionID string, setup AgreementSetup) (AgreementToken, error)
	CaptureAgreement(ctx context.Context, token string) (Agreement, error)
	PayFromAgreement(ctx context.Context, sessionID, agreementID string) (ChargeResult, error)
	ChargeAndRefund(ctx context.Context, req verificationCharge) (ChargeResult, error)
	ChargeAndRefundDeferred(ctx context.Context, req verificationCharge) (ChargeResult, error)
}

// Service composes session/cart lookups, tax resolution and provider
// dispatch into the upsell/confirmation operations. It holds no state of
// its own; every call fetches fresh data and no step is retried.
type Service struct {
	sessions SessionAPI
	carts    CartAPI
	tax      TaxAPI
	history  PaymentHistory
	gateway  ProviderGateway
	tracker  *analytics.Tracker
	log      *slog.Logger
}

func NewService(s SessionAPI, c CartAPI, t TaxAPI, h PaymentHistory, g ProviderGateway, tracker *analytics.Tracker, log *slog.Logger) *Service {
	return &Service{sessions: s, carts: c, tax: t, history: h, gateway: g, tracker: tracker, log: log}
}

type UpsellChargeInput struct {
	ReferenceID string         `json:"referenceId" validate:"required"`
	Amount      float64        `json:"amount" validate:"gt=0"`
	CaptureMode CaptureMode    `json:"captureMode" validate:"omitempty,oneof=capture authorize"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	OrderID     string         `json:"orderId"`
}

// UpsellCharge issues a charge against the payment instrument recorded by
// the reference's first payment. The provider recorded in history decides
// the adapter; the amount actually charged is always the tax-inclusive one.
func (s *Service) UpsellCharge(ctx context.Context, in UpsellChargeInput) (ChargeResult, error) {
	if fields := validate.Struct(&in); fields != nil {
		return ChargeResult{}, apperr.InvalidErr("Invalid charge input.", fields)
	}

	ref, err := s.history.FirstPayment(ctx, in.ReferenceID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return ChargeResult{}, &apperr.AppError{Kind: apperr.NotFound, PublicMsg: "No prior payment for reference.", Err: ErrNoPriorPayment}
		}
		return ChargeResult{}, err
	}

	sess, err := s.sessions.FetchSession(ctx, in.ReferenceID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return ChargeResult{}, &apperr.AppError{Kind: apperr.NotFound, PublicMsg: "Session not found.", Err: ErrSessionNotFound}
		}
		return ChargeResult{}, err
	}

	calc, err := s.resolveTax(ctx, in.Amount, sess, in.Metadata)
	if err != nil {
		return ChargeResult{}, err
	}

	orderID := in.OrderID
	if orderID == "" {
		orderID = NewUpsellOrderID(in.ReferenceID)
	}

	var res ChargeResult
	switch ClassifyProvider(ref.Provider) {
	case ProviderPrimer:
		res, err = s.gateway.ChargePrimer(ctx, PrimerChargeRequest{
			CustomerID:    in.ReferenceID,
			Currency:      sess.Currency(),
			Amount:        calc.AmountWithTax,
			ManualCapture: in.CaptureMode == CaptureAuthorize,
			OrderID:       orderID,
			Metadata:      withTaxMetadata(in.Metadata, calc),
		})
	case ProviderPaypal:
		desc := in.Description
		if desc == "" {
			desc = "Charge"
		}
		intent := PaypalIntentCapture
		if in.CaptureMode == CaptureAuthorize {
			intent = PaypalIntentAuthorize
		}
		res, err = s.gateway.ChargePaypal(ctx, PaypalChargeRequest{
			ChargeID:    ref.ChargeID,
			Currency:    sess.Currency(),
			Description: desc,
			Intent:      intent,
			OrderID:     orderID,
			Metadata:    withTaxMetadata(in.Metadata, calc),
			Total:       calc.AmountWithTax,
		})
	default:
		// Lookups above are read-only, nothing to roll back.
		return ChargeResult{}, apperr.UnsupportedProviderErr(ref.Provider)
	}
	if err != nil {
		return ChargeResult{}, err
	}

	s.log.Info("upsell_charge_succeeded",
		"reference_id", in.ReferenceID,
		"order_id", orderID,
		"provider", ref.Provider,
		"amount", calc.AmountWithTax,
	)
	s.tracker.Capture(ctx, "upsell_charge_succeeded", map[string]any{
		"referenceId": in.ReferenceID,
		"orderId":     orderID,
		"provider":    ref.Provider,
		"amount":      calc.AmountWithTax,
	})
	return res, nil
}

type CartChargeInput struct {
	CartRef     string         `json:"cartRef" validate:"required"`
	CaptureMode CaptureMode    `json:"captureMode" validate:"omitempty,oneof=capture authorize"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

// UpsellChargeFromCart aggregates the cart's line items into a single
// charge. The full cart reference becomes the order id so the charge stays
// traceable to the originating cart.
func (s *Service) UpsellChargeFromCart(ctx context.Context, in CartChargeInput) (ChargeResult, error) {
	if fields := validate.Struct(&in); fields != nil {
		return ChargeResult{}, apperr.InvalidErr("Invalid cart charge input.", fields)
	}

	sessionID := carts.SessionIDFromCartRef(in.CartRef)

	cart, err := s.carts.FetchCart(ctx, in.CartRef)
	if err != nil {
		return ChargeResult{}, err
	}

	return s.UpsellCharge(ctx, UpsellChargeInput{
		ReferenceID: sessionID,
		Amount:      cart.Total(),
		CaptureMode: in.CaptureMode,
		Description: in.Description,
		Metadata:    in.Metadata,
		OrderID:     in.CartRef,
	})
}

type ConfirmPaymentInput struct {
	CartID      string         `json:"cartId" validate:"required"`
	SessionID   string         `json:"sessionId" validate:"required"`
	CartPayload map[string]any `json:"cartPayload"`
}

// ConfirmPayment marks the cart paid, then the session purchased, strictly
// in that order. If the cart call fails the session is never touched:
// downstream consumers key off session-purchased status to consider the
// whole transaction complete.
func (s *Service) ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (carts.Cart, error) {
	if fields := validate.Struct(&in); fields != nil {
		return carts.Cart{}, apperr.InvalidErr("Invalid confirmation input.", fields)
	}

	cart, err := s.carts.MarkPaid(ctx, in.CartID, in.CartPayload)
	if err != nil {
		return carts.Cart{}, err
	}

	if err := s.sessions.MarkPurchased(ctx, in.SessionID); err != nil {
		return carts.Cart{}, err
	}
	return cart, nil
}

// resolveTax applies the skip-tax opt-out or delegates to the tax service.
// Every charge path downstream must use the returned AmountWithTax, never
// the raw amount.
func (s *Service) resolveTax(ctx context.Context, amount float64, sess sessions.Session, meta map[string]any) (tax.Calculation, error) {
	if skip, ok := meta[metaSkipTax].(bool); ok && skip {
		return tax.Identity(amount), nil
	}
	return s.tax.Calculate(ctx, amount, sess.CountryCode, sess.State)
}

// withTaxMetadata copies the caller's metadata and merges the tax fields
// providers expect ({tx, txp}). The input map is never mutated.
func withTaxMetadata(meta map[string]any, calc tax.Calculation) map[string]any {
	out := make(map[string]any, len(meta)+2)
	for k, v := range meta {
		out[k] = v
	}
	out["tx"] = calc.TaxAmount
	out["txp"] = calc.TaxPercent
	return out
}
