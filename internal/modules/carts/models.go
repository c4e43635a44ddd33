package carts

// sessionIDLen is the fixed width of a session id. Cart references are
// composed as {sessionId}{suffix}, so the session id is always the first 36
// characters.
const sessionIDLen = 36

type Cart struct {
	ID    string     `json:"id"`
	Items []LineItem `json:"items"`
}

type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Total is the literal sum of quantity×price over all line items, computed
// fresh on every call. No caching, no rounding before summation.
func (c Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += float64(it.Quantity) * it.Product.Price
	}
	return total
}

// SessionIDFromCartRef extracts the session id from a composed cart
// reference. References shorter than a full session id are returned as-is.
func SessionIDFromCartRef(cartRef string) string {
	if len(cartRef) <= sessionIDLen {
		return cartRef
	}
	return cartRef[:sessionIDLen]
}
