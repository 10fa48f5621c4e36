package main

import (
	"fmt"
	"os"
	"strconv"

	"painel/internal/config"
	"painel/internal/database"
	"painel/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrate <up|down [N]|version|force V>")
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	manager, err := database.NewManager(appConfig.Database())
	if err != nil {
		return err
	}
	defer manager.Close()

	switch command := args[0]; command {
	case "up":
		return manager.RunMigrations()

	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
		}
		return manager.RollbackMigrations(steps)

	case "version":
		version, dirty, err := manager.MigrationVersion()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
		return nil

	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force needs the version to record")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version: %w", err)
		}
		return manager.ForceVersion(version)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, version, or force)", command)
	}
}
