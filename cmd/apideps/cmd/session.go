package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/catalog"
	"github.com/dbsmedya/apideps/internal/closure"
	"github.com/dbsmedya/apideps/internal/config"
	"github.com/dbsmedya/apideps/internal/database"
	"github.com/dbsmedya/apideps/internal/logger"
	"github.com/dbsmedya/apideps/internal/provider/gotypes"
	"github.com/dbsmedya/apideps/internal/provider/schema"
	"github.com/dbsmedya/apideps/internal/provider/sqlcatalog"
	"github.com/dbsmedya/apideps/internal/typesys"
)

// session is the state shared by commands that compute a closure.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	provider typesys.Provider
	closer   func() error
}

// loadConfig loads the config file, if any, and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyOverrides(GetCLIOverrides())
	return cfg, nil
}

// openSession loads and validates the configuration and opens the
// configured provider.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	p, closer, err := newProvider(ctx, cfg, log.WithProvider(cfg.Provider.Kind))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, provider: p, closer: closer}, nil
}

// newProvider opens the provider selected by cfg. The returned function
// releases it.
func newProvider(ctx context.Context, cfg *config.Config, log *logger.Logger) (typesys.Provider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Provider.Kind {
	case config.ProviderGo:
		return gotypes.New(gotypes.Config{
			Dir:          cfg.Provider.Go.Dir,
			BuildTags:    cfg.Provider.Go.BuildTags,
			IncludeTests: cfg.Provider.Go.IncludeTests,
			Logger:       log,
		}), noop, nil

	case config.ProviderSchema:
		u, err := schema.LoadFile(cfg.Provider.Schema.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load schema: %w", err)
		}
		log.Debugw("schema loaded", "path", cfg.Provider.Schema.Path, "types", u.Len())
		return u, noop, nil

	case config.ProviderMySQL:
		mgr := database.NewManager(&cfg.Provider.MySQL, log)
		if err := mgr.Connect(ctx); err != nil {
			return nil, nil, err
		}
		p, err := sqlcatalog.New(ctx, mgr.Catalog, sqlcatalog.Options{
			TablePrefix: cfg.Provider.MySQL.TablePrefix,
			CacheSize:   cfg.Provider.MySQL.CacheSize,
			Logger:      log,
		})
		if err != nil {
			mgr.Close()
			return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		return p, mgr.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider.Kind)
}

// computeClosure resolves the configured seeds and computes their closure.
func (s *session) computeClosure(ctx context.Context) (*closure.API, error) {
	names, err := s.cfg.SeedNames(catalog.SeedNames)
	if err != nil {
		return nil, err
	}

	seeds, err := typesys.ResolveAll(ctx, s.provider, names)
	if err != nil {
		return nil, err
	}

	s.log.Infow("computing closure", "seeds", len(seeds), "catalog", s.cfg.Seeds.Catalog)
	start := time.Now()

	api, err := closure.New(ctx, s.provider, seeds, closure.WithLogger(s.log))
	if err != nil {
		return nil, err
	}

	stats := api.Stats()
	s.log.Infow("closure computed",
		"types", stats.Types,
		"namespaces", stats.Namespaces,
		"members", stats.Members,
		"dependencies", stats.Edges,
		"cyclic", stats.Cyclic,
		"duration", time.Since(start),
	)
	return api, nil
}

// Close releases the provider and flushes the logger.
func (s *session) Close() {
	if err := s.closer(); err != nil {
		s.log.Warnw("failed to close provider", "error", err)
	}
	_ = s.log.Sync()
}

// signalContext cancels on SIGINT or SIGTERM and reports the signal on stderr.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return database.SetupSignalHandler(parent, func(sig os.Signal) {
		fmt.Fprintf(os.Stderr, "received %s, stopping\n", sig)
	})
}
