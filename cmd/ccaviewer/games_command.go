package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGamesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the games whose archives are known to work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cfg.Games) == 0 {
				printSupportedGames(out, cfg)
				return nil
			}
			rows := make([][]string, 0, len(cfg.Games))
			for i, game := range cfg.Games {
				rows = append(rows, []string{fmt.Sprintf("%d", i+1), game.Name, game.Notes})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Game", "Notes"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
			return nil
		},
	}
}
