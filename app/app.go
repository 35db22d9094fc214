// Package app wires the providers, cache, store, and poller together behind
// one mutex-guarded facade. The TUI's command goroutines and the CLI
// subcommands both go through it, so state mutation happens in exactly one
// place.
package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"tempmail-pro/cache"
	"tempmail-pro/models"
	"tempmail-pro/poller"
	"tempmail-pro/provider"
	"tempmail-pro/store"
)

// Registry is the provider lookup the application depends on. It is the
// surface of provider.Registry, split out so tests can substitute providers.
type Registry interface {
	Get(name string) (provider.Provider, error)
	Names() []string
	Close()
}

type App struct {
	Config *models.Config
	Log    *zap.Logger

	registry Registry
	store    *store.Store
	cache    *cache.MessageCache
	poller   *poller.Poller

	mu    sync.Mutex
	state *models.State
}

// New builds the application around a loaded config, reading persisted state
// from disk.
func New(cfg *models.Config, log *zap.Logger) (*App, error) {
	return NewWithRegistry(cfg, log, provider.NewRegistry(provider.Options{Timeout: cfg.HTTPTimeout}))
}

// NewWithRegistry builds the application around an explicit provider
// registry.
func NewWithRegistry(cfg *models.Config, log *zap.Logger, registry Registry) (*App, error) {
	st := store.New(cfg.StateFile)

	state, err := st.Load()
	if err != nil {
		// A corrupt state file should not brick the app: log and start over.
		log.Error("state file unreadable, starting fresh", zap.Error(err))
		state = models.NewState()
	}

	return &App{
		Config:   cfg,
		Log:      log,
		registry: registry,
		store:    st,
		cache:    cache.NewMessageCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		poller:   poller.New(registry, log),
		state:    state,
	}, nil
}

// Close persists state and releases pooled resources.
func (a *App) Close() {
	if err := a.Save(); err != nil {
		a.Log.Error("saving state on close", zap.Error(err))
	}
	a.cache.Close()
	a.registry.Close()
}

// ProviderNames returns the registered provider names, sorted.
func (a *App) ProviderNames() []string { return a.registry.Names() }

// Addresses returns a snapshot of the tracked addresses.
func (a *App) Addresses() []models.Address {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.Address, len(a.state.Addresses))
	copy(out, a.state.Addresses)
	return out
}

// Save writes the current state to disk.
func (a *App) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Save(a.state)
}

// Domains lists the domains a provider can mint addresses under.
func (a *App) Domains(ctx context.Context, providerName string) ([]string, error) {
	prov, err := a.registry.Get(providerName)
	if err != nil {
		return nil, err
	}
	return prov.Domains(ctx)
}

// CreateAddress mints an address with the named provider, tracks it, and
// persists state.
func (a *App) CreateAddress(ctx context.Context, providerName, domain string) (models.Address, error) {
	prov, err := a.registry.Get(providerName)
	if err != nil {
		return models.Address{}, err
	}

	addr, err := prov.CreateAddress(ctx, domain)
	if err != nil {
		return models.Address{}, err
	}

	a.mu.Lock()
	a.state.AddAddress(addr)
	err = a.store.Save(a.state)
	a.mu.Unlock()

	if err != nil {
		a.Log.Error("saving state after create", zap.Error(err))
	}
	a.Log.Info("created address",
		zap.String("email", addr.Email),
		zap.String("provider", providerName))
	return addr, nil
}

// DeleteAddress forgets an address, its cached messages, and persists state.
// It reports whether the address was tracked.
func (a *App) DeleteAddress(email string) bool {
	a.mu.Lock()
	removed := a.state.RemoveAddress(email)
	var err error
	if removed {
		err = a.store.Save(a.state)
	}
	a.mu.Unlock()

	if err != nil {
		a.Log.Error("saving state after delete", zap.Error(err))
	}
	if removed {
		a.cache.DeletePrefix(email + "/")
		a.Log.Info("deleted address", zap.String("email", email))
	}
	return removed
}

// RefreshAddress lists messages for one tracked address, folds the result
// into state, and reports how many are new.
func (a *App) RefreshAddress(ctx context.Context, email string) ([]models.MessageSummary, int, error) {
	a.mu.Lock()
	addr := a.state.FindAddress(email)
	if addr == nil {
		a.mu.Unlock()
		return nil, 0, errors.Errorf("address '%s' is not tracked", email)
	}
	snapshot := *addr
	a.mu.Unlock()

	result := a.poller.Refresh(ctx, snapshot)
	if result.Err != nil {
		return nil, 0, result.Err
	}

	a.mu.Lock()
	notices := poller.Apply(a.state, []poller.Result{result})
	err := a.store.Save(a.state)
	a.mu.Unlock()

	if err != nil {
		a.Log.Error("saving state after refresh", zap.Error(err))
	}

	newCount := 0
	if len(notices) > 0 {
		newCount = notices[0].New
	}
	return result.Messages, newCount, nil
}

// RefreshAll refreshes every tracked address and returns new-mail notices.
func (a *App) RefreshAll(ctx context.Context) []poller.Notice {
	results := a.poller.RefreshAll(ctx, a.Addresses())

	a.mu.Lock()
	notices := poller.Apply(a.state, results)
	err := a.store.Save(a.state)
	a.mu.Unlock()

	if err != nil {
		a.Log.Error("saving state after refresh", zap.Error(err))
	}
	return notices
}

// Watch polls all tracked addresses at the given interval until the context
// ends, invoking onNotice for every address that received new mail.
func (a *App) Watch(ctx context.Context, interval time.Duration, onNotice func(poller.Notice)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for _, n := range a.RefreshAll(ctx) {
			if onNotice != nil {
				onNotice(n)
			}
			a.Log.Info("new mail",
				zap.String("email", n.Email),
				zap.Int("new", n.New),
				zap.Int("total", n.Count))
		}
	}
}

// ReadMessage fetches a full message, read-through: memory cache first, then
// the persisted read-messages map, then the provider. Provider hits are
// written back to both layers so read mail survives provider expiry.
func (a *App) ReadMessage(ctx context.Context, email, id string) (models.Message, error) {
	key := models.MessageKey(email, id)

	if msg, ok := a.cache.Get(key); ok {
		return msg, nil
	}

	a.mu.Lock()
	addr := a.state.FindAddress(email)
	var snapshot models.Address
	if addr != nil {
		snapshot = *addr
	}
	persisted, havePersisted := a.state.ReadMessages[key]
	a.mu.Unlock()

	if addr == nil {
		return models.Message{}, errors.Errorf("address '%s' is not tracked", email)
	}

	prov, err := a.registry.Get(snapshot.Provider)
	if err != nil {
		return models.Message{}, err
	}

	msg, err := prov.FetchMessage(ctx, snapshot.Token, id)
	if err != nil {
		if havePersisted {
			// Provider lost the message (expired session, one-shot
			// delivery); serve the persisted copy.
			a.Log.Debug("serving persisted message", zap.String("key", key), zap.Error(err))
			a.cache.Set(key, persisted)
			return persisted, nil
		}
		return models.Message{}, err
	}

	a.cache.Set(key, msg)

	a.mu.Lock()
	a.state.ReadMessages[key] = msg
	saveErr := a.store.Save(a.state)
	a.mu.Unlock()

	if saveErr != nil {
		a.Log.Error("saving state after read", zap.Error(saveErr))
	}
	return msg, nil
}

// RawJSON renders a message as indented JSON for the raw view.
func RawJSON(msg models.Message) string {
	raw, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(raw)
}
