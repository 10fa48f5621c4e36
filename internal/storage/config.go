package storage

import (
	"fmt"

	"painel/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.StorageBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.StorageBackend)
	}

	cfg := Config{
		Type:      backendType,
		LocalPath: appConfig.LocalStorePath,
		Migrate:   appConfig.AutoMigrate,
	}
	if backendType == BackendRemote {
		cfg.Database = appConfig.Database()
	}
	return cfg, nil
}
