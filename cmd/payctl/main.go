package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"log/slog"

	"funnelpay.com/app/internal/config"
	"funnelpay.com/app/internal/modules/analytics"
	"funnelpay.com/app/internal/modules/carts"
	"funnelpay.com/app/internal/modules/payments"
	"funnelpay.com/app/internal/modules/sessions"
	"funnelpay.com/app/internal/modules/tax"
	"funnelpay.com/app/internal/shared/apperr"
	"funnelpay.com/app/internal/transport"
)

func main() {
	op := flag.String("op", "", "Operation: upsell, upsell-cart, confirm, paypal-start, paypal-capture, verify, verify-deferred")
	ref := flag.String("ref", "", "Session/reference id")
	amount := flag.Float64("amount", 0, "Pre-tax amount in major units")
	authorize := flag.Bool("authorize", false, "Authorize only (no immediate capture)")
	desc := flag.String("desc", "", "Charge description")
	orderID := flag.String("order-id", "", "Caller-supplied order id (optional)")
	skipTax := flag.Bool("skip-tax", false, "Skip tax calculation")
	cartRef := flag.String("cart-ref", "", "Cart reference ({sessionId}{suffix})")
	cartID := flag.String("cart-id", "", "Cart id (confirm)")
	token := flag.String("token", "", "PayPal billing-agreement token (paypal-capture)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	api := transport.New(transport.Config{
		BaseURL: cfg.APIBaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.HTTPTimeout,
	}, logger)

	gw := payments.NewGateway(api)
	svc := payments.NewService(
		sessions.NewClient(api),
		carts.NewClient(api),
		tax.NewClient(api),
		gw,
		gw,
		analytics.NewTracker(api, logger),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	captureMode := payments.CaptureImmediate
	if *authorize {
		captureMode = payments.CaptureAuthorize
	}
	meta := map[string]any{}
	if *skipTax {
		meta["skipTax"] = true
	}

	var out any
	switch *op {
	case "upsell":
		out, err = svc.UpsellCharge(ctx, payments.UpsellChargeInput{
			ReferenceID: *ref,
			Amount:      *amount,
			CaptureMode: captureMode,
			Description: *desc,
			Metadata:    meta,
			OrderID:     *orderID,
		})
	case "upsell-cart":
		out, err = svc.UpsellChargeFromCart(ctx, payments.CartChargeInput{
			CartRef:     *cartRef,
			CaptureMode: captureMode,
			Description: *desc,
			Metadata:    meta,
		})
	case "confirm":
		out, err = svc.ConfirmPayment(ctx, payments.ConfirmPaymentInput{
			CartID:    *cartID,
			SessionID: *ref,
		})
	case "paypal-start":
		out, err = svc.StartPaypalAgreement(ctx, *ref, payments.AgreementSetup{"description": *desc})
	case "paypal-capture":
		out, err = svc.CapturePaypalAgreement(ctx, payments.CaptureAgreementInput{
			SessionID: *ref,
			Token:     *token,
		})
	case "verify":
		out, err = svc.VerifyChargeRefund(ctx, payments.VerificationRequest{OrderID: *orderID, Amount: *amount})
	case "verify-deferred":
		out, err = svc.VerifyChargeRefundDeferred(ctx, payments.VerificationRequest{OrderID: *orderID, Amount: *amount})
	default:
		fmt.Fprintln(os.Stderr, "Error: unknown -op (use upsell, upsell-cart, confirm, paypal-start, paypal-capture, verify, verify-deferred)")
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperr.PublicMessage(err))
		if ae, ok := apperr.As(err); ok {
			fmt.Fprintf(os.Stderr, "Kind: %s\n", ae.Kind)
			for f, msg := range ae.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f, msg)
			}
		}
		logger.Error("operation_failed", "op", *op, "error", err)
		os.Exit(1)
	}

	buf, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(buf))
}
