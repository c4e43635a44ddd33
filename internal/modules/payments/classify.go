package payments

import "strings"

type ProviderKind int

const (
	ProviderUnsupported ProviderKind = iota
	ProviderPrimer
	ProviderPaypal
)

// ClassifyProvider maps a recorded payment-source tag to a provider kind.
// Primer has a single exact tag; PayPal is a family of tags ("paypal",
// "paypal-eu", "classic-paypal", ...) sharing a common substring. The
// asymmetric matching rule is deliberate.
func ClassifyProvider(tag string) ProviderKind {
	switch {
	case tag == "primer":
		return ProviderPrimer
	case strings.Contains(tag, "paypal"):
		return ProviderPaypal
	default:
		return ProviderUnsupported
	}
}
