package carts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	a := LineItem{Product: Product{ID: "p1", Price: 500}, Quantity: 2}
	b := LineItem{Product: Product{ID: "p2", Price: 250}, Quantity: 1}

	c1 := Cart{Items: []LineItem{a, b}}
	c2 := Cart{Items: []LineItem{b, a}}

	assert.Equal(t, float64(1250), c1.Total())
	assert.Equal(t, c1.Total(), c2.Total(), "total is order-independent")
	assert.Zero(t, Cart{}.Total())
}

func TestSessionIDFromCartRef(t *testing.T) {
	sessionID := strings.Repeat("a", 36)

	assert.Equal(t, sessionID, SessionIDFromCartRef(sessionID+"-xy1"))
	assert.Equal(t, sessionID, SessionIDFromCartRef(sessionID+"ZZZZ"), "trailing chars are irrelevant")
	assert.Equal(t, sessionID, SessionIDFromCartRef(sessionID))
	assert.Equal(t, "short", SessionIDFromCartRef("short"))
}
