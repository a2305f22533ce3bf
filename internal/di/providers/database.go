package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/animes2u/catalog-server/internal/config"
	"github.com/animes2u/catalog-server/internal/logger"
	"github.com/animes2u/catalog-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the in-memory catalog store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("In-memory store initialized")

	return &StoreHandle{Store: db}, nil
}

// Bootstrap contains the startup seeding result.
type Bootstrap struct {
	AdminCreated bool
	SeededCount  int
}

// ProvideBootstrap ensures the admin account exists and, when enabled, loads
// the demo catalog into an empty store.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	ctx := context.Background()

	created, err := storeHandle.EnsureAdminUser(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info("Admin account created", "username", cfg.Auth.AdminUsername)
	}

	result := &Bootstrap{AdminCreated: created}

	if cfg.Seed.Demo {
		count, err := storeHandle.SeedDemoCatalog(ctx)
		if err != nil {
			return nil, err
		}
		result.SeededCount = count
		if count > 0 {
			log.Info("Demo catalog seeded", "entries", count)
		}
	}

	return result, nil
}
