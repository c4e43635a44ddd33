package payments

// CaptureMode selects whether a charge settles immediately or is only
// authorized pending a later capture.
type CaptureMode string

const (
	CaptureImmediate CaptureMode = "capture"
	CaptureAuthorize CaptureMode = "authorize"
)

// PaymentReference is the first recorded payment for a session/order. It
// pins which provider (and, for PayPal, which charge) future upsell charges
// reuse. Immutable once charged.
type PaymentReference struct {
	Provider string `json:"provider"`
	ChargeID string `json:"chargeId"`
}

type ChargeResult struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	OrderID  string `json:"orderId"`
	Provider string `json:"provider"`
}

// PrimerChargeRequest is the per-operation value object sent to the Primer
// adapter. Never persisted.
type PrimerChargeRequest struct {
	CustomerID    string         `json:"customerId"`
	Currency      string         `json:"currency"`
	Amount        float64        `json:"amount"`
	ManualCapture bool           `json:"manualCapture"`
	OrderID       string         `json:"orderId"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type PaypalIntent string

const (
	PaypalIntentAuthorize PaypalIntent = "AUTHORIZE"
	PaypalIntentCapture   PaypalIntent = "CAPTURE"
)

type PaypalChargeRequest struct {
	ChargeID    string         `json:"chargeId"`
	Currency    string         `json:"currency"`
	Description string         `json:"description"`
	Intent      PaypalIntent   `json:"intent"`
	OrderID     string         `json:"orderId"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Total       float64        `json:"total"`
}

// AgreementSetup is the opaque setup payload forwarded to PayPal when
// starting a billing agreement.
type AgreementSetup map[string]any

type AgreementToken struct {
	Token string `json:"token"`
}

type Agreement struct {
	ID string `json:"agreementId"`
}
