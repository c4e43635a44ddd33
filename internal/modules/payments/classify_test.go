package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProvider(t *testing.T) {
	cases := []struct {
		tag  string
		want ProviderKind
	}{
		{"primer", ProviderPrimer},
		{"paypal", ProviderPaypal},
		{"paypal-eu", ProviderPaypal},
		{"classic-paypal", ProviderPaypal},
		{"paypal-recurring", ProviderPaypal},
		{"stripe", ProviderUnsupported},
		{"primer-eu", ProviderUnsupported}, // primer is an exact tag, not a family
		{"", ProviderUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyProvider(tc.tag))
		})
	}
}
