package sessions

// Session is the backend's visit/purchase record. Read-only here; mutations
// happen through dedicated endpoints (purchased flag, extra-data appends).
type Session struct {
	ID          string    `json:"id"`
	CountryCode string    `json:"countryCode"`
	State       string    `json:"state"`
	ExtraData   ExtraData `json:"extraData"`
}

type ExtraData struct {
	Currency string            `json:"currency"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Currency falls back to USD when the session carries no currency.
func (s Session) Currency() string {
	if s.ExtraData.Currency == "" {
		return "USD"
	}
	return s.ExtraData.Currency
}
