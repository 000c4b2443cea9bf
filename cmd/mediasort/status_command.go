package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mediasort/internal/checkpoint"
	"mediasort/internal/logging"
	"mediasort/internal/registry"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show persisted state locations and entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger := logging.NewNop()
			reg := registry.Load(cfg.RegistryPath(), logger)
			checkpoints := checkpoint.Load(cfg.CheckpointPath(), logger)

			printer := message.NewPrinter(language.English)
			rows := [][]string{
				{"Hash registry", cfg.RegistryPath(), printer.Sprintf("%d", reg.Len())},
				{"Checkpoints", cfg.CheckpointPath(), printer.Sprintf("%d", checkpoints.Len())},
			}

			out := cmd.OutOrStdout()
			if stdoutIsTerminal() {
				fmt.Fprintln(out, renderTable(
					[]string{"State", "Path", "Entries"},
					rows,
				))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintf(out, "%s\t%s\t%s\n", row[0], row[1], row[2])
			}
			return nil
		},
	}
}
