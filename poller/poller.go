// Package poller refreshes tracked inboxes. The TUI and the watch loop both
// drive it one sweep at a time through RefreshAll. Refreshes never mutate
// shared state: results are applied separately so the caller controls where
// mutation happens.
package poller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tempmail-pro/models"
	"tempmail-pro/provider"
)

// Result is the outcome of refreshing one address.
type Result struct {
	Email    string
	Messages []models.MessageSummary
	Err      error
}

// Notice reports newly arrived mail after a refresh is applied.
type Notice struct {
	Email string
	Count int // total messages now in the inbox
	New   int // how many arrived since the previous refresh
}

// Registry resolves provider names to clients.
type Registry interface {
	Get(name string) (provider.Provider, error)
}

type Poller struct {
	registry Registry
	log      *zap.Logger
}

func New(registry Registry, log *zap.Logger) *Poller {
	return &Poller{registry: registry, log: log}
}

// Refresh lists messages for a single address.
func (p *Poller) Refresh(ctx context.Context, addr models.Address) Result {
	prov, err := p.registry.Get(addr.Provider)
	if err != nil {
		return Result{Email: addr.Email, Err: err}
	}

	msgs, err := prov.ListMessages(ctx, addr.Token)
	if err != nil {
		p.log.Warn("refresh failed",
			zap.String("email", addr.Email),
			zap.String("provider", addr.Provider),
			zap.Error(err))
		return Result{Email: addr.Email, Err: err}
	}
	return Result{Email: addr.Email, Messages: msgs}
}

// RefreshAll refreshes every address concurrently. Per-address failures come
// back as Results with Err set; they never abort the sweep.
func (p *Poller) RefreshAll(ctx context.Context, addrs []models.Address) []Result {
	results := make([]Result, len(addrs))

	var wg sync.WaitGroup
	for i, addr := range addrs {
		wg.Add(1)
		go func(i int, addr models.Address) {
			defer wg.Done()
			results[i] = p.Refresh(ctx, addr)
		}(i, addr)
	}
	wg.Wait()

	return results
}

// Apply folds refresh results into the state and reports new-mail notices.
// Failed results leave the previous listing untouched.
func Apply(state *models.State, results []Result) []Notice {
	var notices []Notice
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		addr := state.FindAddress(r.Email)
		if addr == nil {
			continue
		}

		prev := addr.LastSeenCount
		addr.Messages = r.Messages
		addr.LastSeenCount = len(r.Messages)

		if len(r.Messages) > prev {
			notices = append(notices, Notice{
				Email: r.Email,
				Count: len(r.Messages),
				New:   len(r.Messages) - prev,
			})
		}
	}
	return notices
}
