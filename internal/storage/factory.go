package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"painel/internal/database"
	"painel/internal/kv"
)

// BackendType selects the Adapter variant.
type BackendType string

const (
	// BackendLocal keeps everything in a single SQLite key/value file.
	BackendLocal BackendType = "local"
	// BackendRemote keeps transactions and goals in Postgres.
	BackendRemote BackendType = "remote"
	// BackendMemory keeps everything in process memory. Intended for tests
	// and demos.
	BackendMemory BackendType = "memory"
)

// IsValid reports whether t names a known backend.
func (t BackendType) IsValid() bool {
	switch t {
	case BackendLocal, BackendRemote, BackendMemory:
		return true
	}
	return false
}

// Config holds what the factory needs to build any backend.
type Config struct {
	Type BackendType

	// LocalPath is the SQLite file for the local backend. The remote backend
	// also keeps the celebrated set here.
	LocalPath string

	// Database is required for the remote backend.
	Database *database.Config
	// Migrate applies pending migrations when the remote backend starts.
	Migrate bool
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %q", c.Type)
	}
	switch c.Type {
	case BackendLocal:
		if c.LocalPath == "" {
			return fmt.Errorf("local store path is required for local backend")
		}
	case BackendRemote:
		if c.Database == nil {
			return fmt.Errorf("database configuration is required for remote backend")
		}
		if c.LocalPath == "" {
			return fmt.Errorf("local store path is required for remote backend")
		}
	}
	return nil
}

// Result is a ready backend. Cleanup releases every resource the factory
// opened and is never nil.
type Result struct {
	Adapter      Adapter
	Celebrations CelebrationStore
	Cleanup      func() error
}

// Factory builds backends from configuration.
type Factory struct {
	log *zap.SugaredLogger
}

// NewFactory creates a Factory that logs through log.
func NewFactory(log *zap.SugaredLogger) *Factory {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Factory{log: log}
}

// Create builds the backend selected by cfg.Type.
func (f *Factory) Create(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case BackendLocal:
		return f.createLocal(cfg)
	case BackendRemote:
		return f.createRemote(ctx, cfg)
	case BackendMemory:
		return f.createMemory()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *Factory) createLocal(cfg Config) (*Result, error) {
	store, err := kv.OpenSQLite(cfg.LocalPath)
	if err != nil {
		return nil, err
	}

	f.log.Infow("Initialized local backend", "path", cfg.LocalPath)

	return &Result{
		Adapter:      NewLocalAdapter(store),
		Celebrations: NewKVCelebrationStore(store),
		Cleanup:      store.Close,
	}, nil
}

func (f *Factory) createRemote(ctx context.Context, cfg Config) (*Result, error) {
	manager, err := database.NewManager(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := manager.Ping(ctx); err != nil {
		_ = manager.Close()
		return nil, err
	}
	if cfg.Migrate {
		if err := manager.RunMigrations(); err != nil {
			_ = manager.Close()
			return nil, err
		}
	}

	store, err := kv.OpenSQLite(cfg.LocalPath)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	f.log.Infow("Initialized remote backend",
		"host", cfg.Database.Host,
		"database", cfg.Database.DBName,
		"celebrations_path", cfg.LocalPath)

	return &Result{
		Adapter:      NewRemoteAdapter(manager.DB()),
		Celebrations: NewKVCelebrationStore(store),
		Cleanup: func() error {
			storeErr := store.Close()
			if err := manager.Close(); err != nil {
				return err
			}
			return storeErr
		},
	}, nil
}

func (f *Factory) createMemory() (*Result, error) {
	store := kv.NewMemoryStore()

	f.log.Infow("Initialized memory backend")

	return &Result{
		Adapter:      NewLocalAdapter(store),
		Celebrations: NewKVCelebrationStore(store),
		Cleanup:      store.Close,
	}, nil
}
