package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCurrency(t *testing.T) {
	s := Session{ExtraData: ExtraData{Currency: "EUR"}}
	assert.Equal(t, "EUR", s.Currency())

	assert.Equal(t, "USD", Session{}.Currency(), "defaults when the session carries no currency")
}
