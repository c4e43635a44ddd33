package tax

import (
	"context"

	"funnelpay.com/app/internal/shared/apperr"
	"funnelpay.com/app/internal/transport"
)

// Calculation is what the backend's tax service returns for an amount in a
// jurisdiction. AmountWithTax — not the raw amount — is what gets charged
// downstream.
type Calculation struct {
	TaxAmount     float64 `json:"taxAmount"`
	AmountWithTax float64 `json:"amountWithTax"`
	TaxPercent    float64 `json:"taxPercent"`
}

// Identity is the no-tax calculation used when the caller opts out of tax.
func Identity(amount float64) Calculation {
	return Calculation{TaxAmount: 0, AmountWithTax: amount, TaxPercent: 0}
}

type Client struct {
	api *transport.Client
}

func NewClient(api *transport.Client) *Client {
	return &Client{api: api}
}

type calculateRequest struct {
	Amount      float64 `json:"amount"`
	CountryCode string  `json:"countryCode"`
	State       string  `json:"state"`
}

// Calculate delegates to the remote tax service. Tax is never inferred
// locally.
func (c *Client) Calculate(ctx context.Context, amount float64, countryCode, state string) (Calculation, error) {
	var out Calculation
	err := c.api.Post(ctx, "/v1/tax/calculate", calculateRequest{
		Amount:      amount,
		CountryCode: countryCode,
		State:       state,
	}, &out)
	if err != nil {
		return Calculation{}, apperr.TaxErr(err)
	}
	return out, nil
}
