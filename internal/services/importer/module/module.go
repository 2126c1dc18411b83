// Package module provides the importer module implementation
package module

import (
	"shopfeed/internal/modkit"
	"shopfeed/internal/modkit/repokit"

	"shopfeed/internal/adapters/enrich/places"
	"shopfeed/internal/adapters/enrich/webpage"
	"shopfeed/internal/adapters/notify"
	"shopfeed/internal/services/importer/domain"
	"shopfeed/internal/services/importer/ingest"
	"shopfeed/internal/services/importer/repo"
	"shopfeed/internal/services/importer/service"
)

// Ports defines the importer module ports
type Ports struct {
	Runner domain.RunnerPort
	Names  domain.NamesPort
}

// Module implements the importer module
type Module struct {
	deps   modkit.Deps
	ports  Ports
	places *places.Client
}

// New constructs the importer module
// It wires up all the adapters and the service using config from deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	// DB binder (no deps passed into repo)
	storeBinder := repo.NewPG()

	// Non-DB adapters
	opener := ingest.NewFileOpener()
	norm := ingest.NewNormalizer()
	resolver := places.New(places.Config{
		RemoteURL:   opts.ChromeURL,
		NavTimeout:  opts.LookupTimeout,
		FindTimeout: opts.FindTimeout,
	})
	pages := webpage.New(opts.FetchTimeout)

	var notifier domain.Notifier
	if opts.NotifyEndpoint != "" {
		notifier = notify.New(notify.Config{
			Endpoint:  opts.NotifyEndpoint,
			ServerKey: opts.NotifyKey,
		})
	}

	svc := service.New(
		repokit.TxRunner(deps.PG), storeBinder,
		opener, norm, resolver, pages, notifier,
		service.Config{
			ScaleFactor:   opts.ScaleFactor,
			LookupTimeout: opts.LookupTimeout,
			FetchTimeout:  opts.FetchTimeout,
		},
	)

	m := &Module{deps: deps, places: resolver}
	m.ports = Ports{Runner: svc, Names: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "importer" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Close releases the browser if one was launched
func (m *Module) Close() error {
	if m.places == nil {
		return nil
	}
	return m.places.Close()
}
