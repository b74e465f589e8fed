package main

import (
	"fmt"
	"strconv"

	"github.com/St1cky1/taskmanager/internal/config"
	"github.com/St1cky1/taskmanager/internal/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd(current func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление миграциями базы данных",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			if err := migrations.Up(current().DatabaseURL()); err != nil {
				p.Error("Ошибка миграций", err)
				return err
			}
			p.Success("Миграции выполнены успешно")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Откатить миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			if steps <= 0 {
				err := fmt.Errorf("steps must be positive, got %d", steps)
				p.Error("Неверное число шагов", err)
				return err
			}
			if err := migrations.Down(current().DatabaseURL(), steps); err != nil {
				p.Error("Ошибка отката", err)
				return err
			}
			p.Success(fmt.Sprintf("Откачено миграций: %d", steps))
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "сколько миграций откатить")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Текущая версия схемы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			version, dirty, err := migrations.Version(current().DatabaseURL())
			if err != nil {
				p.Error("Не удалось получить версию", err)
				return err
			}
			p.Field("version", strconv.FormatUint(uint64(version), 10))
			p.Field("dirty", strconv.FormatBool(dirty))
			if dirty {
				p.Warning("Схема в грязном состоянии, нужна ручная правка")
			}
			return nil
		},
	})

	return cmd
}
