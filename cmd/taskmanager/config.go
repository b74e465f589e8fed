package main

import (
	"github.com/St1cky1/taskmanager/internal/config"
	"github.com/spf13/cobra"
)

func configCmd(current func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Работа с конфигурацией",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Показать итоговую конфигурацию (секреты скрыты)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := current().Masked()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.Title("Конфигурация")
			p.Raw(string(out))
			return nil
		},
	})

	return cmd
}
