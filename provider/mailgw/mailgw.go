// Package mailgw implements the Mail.gw client. The service speaks the same
// Hydra-style API as Mail.tm, so this is a named configuration of that client.
package mailgw

import (
	"net/http"

	"tempmail-pro/provider/mailtm"
)

const (
	Name           = "mailgw"
	defaultBaseURL = "https://api.mail.gw"
)

// New returns a Mail.gw client. baseURL overrides the production endpoint,
// for tests.
func New(httpClient *http.Client, baseURL string) *mailtm.Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return mailtm.NewNamed(httpClient, baseURL, Name)
}
