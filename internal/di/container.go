// Package di wires the client core: store, gateway, query cache, session
// guard, link manager and search pipeline. The cache is an injected
// instance with an explicit lifecycle, created here at startup and torn
// down by the CLI on exit.
package di

import (
	"github.com/samber/do/v2"
)

// Params carries the CLI flag values the providers need.
type Params struct {
	// ConfigDir overrides the configuration directory (empty: resolve
	// from env or platform default).
	ConfigDir string
	// DataDir overrides the data directory.
	DataDir string
}

// NewContainer creates and configures the DI container with all providers.
func NewContainer(params Params) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, params)

	// Core infrastructure
	do.Provide(injector, ProvideConfig)
	do.Provide(injector, ProvideLogger)
	do.Provide(injector, ProvideStore)
	do.Provide(injector, ProvideValidator)

	// Session and transport
	do.Provide(injector, ProvideGuard)
	do.Provide(injector, ProvideGateway)

	// Client core
	do.Provide(injector, ProvideCache)
	do.Provide(injector, ProvideLinkManager)
	do.Provide(injector, ProvideSearchPipeline)

	return injector
}
