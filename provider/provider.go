// Package provider defines the common interface to the disposable-email
// services and a registry that owns a shared HTTP client for all of them.
package provider

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"

	"tempmail-pro/models"
	"tempmail-pro/provider/dropmail"
	"tempmail-pro/provider/guerrilla"
	"tempmail-pro/provider/mailgw"
	"tempmail-pro/provider/mailtm"
	"tempmail-pro/provider/tempmaillol"
)

// Provider is implemented by each disposable-email service client. Tokens
// returned by CreateAddress are opaque; their shape differs per service.
type Provider interface {
	// Name returns the registry name of the service.
	Name() string
	// Domains returns the domains the service can mint addresses under.
	Domains(ctx context.Context) ([]string, error)
	// CreateAddress mints a new address. domain may be empty, in which
	// case the service picks one.
	CreateAddress(ctx context.Context, domain string) (models.Address, error)
	// ListMessages returns normalized inbox summaries for the token.
	ListMessages(ctx context.Context, token string) ([]models.MessageSummary, error)
	// FetchMessage returns the full message with the given id.
	FetchMessage(ctx context.Context, token, id string) (models.Message, error)
}

// Options configures a Registry.
type Options struct {
	// Timeout applies to every provider HTTP request.
	Timeout time.Duration
}

// Registry holds one instance of every provider, all sharing a pooled,
// retry-capable HTTP client. Close returns the client to the pool.
type Registry struct {
	client    *http.Client
	providers map[string]Provider
}

// retryConf allows a few quick retries on transient transport and 5xx
// failures.
func retryConf() utility.HTTPRetryConfiguration {
	return utility.HTTPRetryConfiguration{
		MaxRetries:      3,
		TemporaryErrors: true,
		BaseDelay:       100 * time.Millisecond,
		MaxDelay:        2 * time.Second,
		Methods:         []string{http.MethodGet},
		Statuses: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// NewRegistry builds clients for every supported service.
func NewRegistry(opts Options) *Registry {
	client := utility.GetHTTPRetryableClient(retryConf())
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}

	providers := map[string]Provider{}
	for _, p := range []Provider{
		guerrilla.New(client, ""),
		mailtm.New(client, ""),
		mailgw.New(client, ""),
		dropmail.New(client, ""),
		tempmaillol.New(client, ""),
	} {
		providers[p.Name()] = p
	}

	return &Registry{client: client, providers: providers}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, errors.Errorf("unknown provider '%s'", name)
	}
	return p, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the shared HTTP client back to the pool.
func (r *Registry) Close() {
	utility.PutHTTPClient(r.client)
}
