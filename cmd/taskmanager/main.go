package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/St1cky1/taskmanager/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        *config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "taskmanager",
		Short:         "Персональный менеджер задач: HTTP API, gRPC и аудит",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(configPath)
			if err != nil {
				newPrinter(cmd.ErrOrStderr()).Error("Ошибка конфигурации", err)
				return err
			}
			cfg = loaded
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "путь к yaml-файлу конфигурации")

	current := func() *config.Config { return cfg }
	rootCmd.AddCommand(serveCmd(current))
	rootCmd.AddCommand(migrateCmd(current))
	rootCmd.AddCommand(configCmd(current))

	return rootCmd
}

// loadConfig - отсутствующий файл не ошибка, остаются умолчания и окружение
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		} else if err != nil {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}
	return config.Load(path)
}
