package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/linkdecklabs/linkdeck/internal/api"
	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/config"
	"github.com/linkdecklabs/linkdeck/internal/links"
	"github.com/linkdecklabs/linkdeck/internal/logger"
	"github.com/linkdecklabs/linkdeck/internal/paths"
	"github.com/linkdecklabs/linkdeck/internal/search"
	"github.com/linkdecklabs/linkdeck/internal/session"
	"github.com/linkdecklabs/linkdeck/internal/store"
	"github.com/linkdecklabs/linkdeck/internal/validation"
)

// ProvideConfig resolves the config directory and loads config.yaml.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	params := do.MustInvoke[Params](i)

	dir, err := paths.ResolveConfigDir(params.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProvideLogger builds the structured logger from config.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}), nil
}

// ProvideStore opens the durable local store in the resolved data
// directory. The CLI closes it on exit.
func ProvideStore(i do.Injector) (*store.Store, error) {
	params := do.MustInvoke[Params](i)
	cfg := do.MustInvoke[*config.Config](i)

	dataDir, err := paths.ResolveDataDir(params.DataDir, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	st := store.New()
	if err := st.Open(dataDir); err != nil {
		return nil, err
	}
	return st, nil
}

// ProvideValidator builds the shared form validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideGuard restores the persisted session. The gateway is attached in
// ProvideGateway, since the gateway's token source is the guard.
func ProvideGuard(i do.Injector) (*session.Guard, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	return session.New(st, session.WithLogger(log), session.WithValidator(v))
}

// ProvideGateway builds the API client with the guard as token source.
func ProvideGateway(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	guard := do.MustInvoke[*session.Guard](i)

	client := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithTokenSource(guard),
		api.WithLogger(log))

	guard.SetGateway(client)
	return client, nil
}

// ProvideCache builds the query cache, persisting successful values to
// the store for offline reads.
func ProvideCache(i do.Injector) (*cache.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return cache.New(
		cache.WithTTL(cfg.CacheTTL),
		cache.WithPersister(st),
		cache.WithLogger(log)), nil
}

// ProvideLinkManager builds the link collection manager.
func ProvideLinkManager(i do.Injector) (*links.Manager, error) {
	c := do.MustInvoke[*cache.Cache](i)
	gw := do.MustInvoke[*api.Client](i)
	guard := do.MustInvoke[*session.Guard](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	return links.New(c, gw, guard, links.WithLogger(log), links.WithValidator(v)), nil
}

// ProvideSearchPipeline builds the debounced search pipeline.
func ProvideSearchPipeline(i do.Injector) (*search.Pipeline, error) {
	c := do.MustInvoke[*cache.Cache](i)
	gw := do.MustInvoke[*api.Client](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return search.New(c, gw,
		search.WithDelay(cfg.SearchDebounce),
		search.WithMinQueryLen(cfg.SearchMinQueryLen),
		search.WithLimit(cfg.SearchLimit),
		search.WithLogger(log)), nil
}
