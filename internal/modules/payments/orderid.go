package payments

import (
	"fmt"
	"math/rand/v2"
)

const (
	orderIDMin  = 1000
	orderIDSpan = 9000 // inclusive range [1000, 9999]
)

// NewUpsellOrderID synthesizes an order id for a charge attempt:
// {referenceId}-up-{n} with n uniform in [1000, 9999]. The 9000-value range
// is a deliberate weak uniqueness guarantee; collisions are the caller's
// risk and are neither detected nor retried here.
func NewUpsellOrderID(referenceID string) string {
	return fmt.Sprintf("%s-up-%d", referenceID, orderIDMin+rand.IntN(orderIDSpan))
}
