package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ccaviewer/internal/cca"
	"ccaviewer/internal/config"
	"ccaviewer/internal/logging"
)

type extractFlags struct {
	noPause   bool
	skipMagic bool
	outputDir string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)
	var extract extractFlags

	rootCmd := &cobra.Command{
		Use:           "ccaviewer <archive.cca>",
		Short:         "Make the text inside CCA archives readable",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printUsage(cmd.OutOrStdout(), ctx.configValue())
				return cca.ErrUsage
			}
			return runExtract(cmd, ctx, args[0], extract)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format override (console, json)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&extract.noPause, "no-pause", false, "Exit without waiting for Enter")
	rootCmd.Flags().BoolVar(&extract.skipMagic, "skip-magic", false, "Skip the CCA header check")
	rootCmd.Flags().StringVar(&extract.outputDir, "output-dir", "", "Directory for the text and debug files (default: working directory)")

	rootCmd.AddCommand(newHexdumpCommand())
	rootCmd.AddCommand(newStringsCommand())
	rootCmd.AddCommand(newCountCommand())
	rootCmd.AddCommand(newReplaceCommand(ctx))
	rootCmd.AddCommand(newPatchCommand(ctx))
	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newGamesCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runExtract(cmd *cobra.Command, ctx *commandContext, archive string, flags extractFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	runCtx, logger, err := ctx.commandScope(cmd)
	if err != nil {
		return err
	}

	opts := cca.OptionsFromConfig(cfg)
	opts.Logger = logger
	if flags.skipMagic {
		opts.VerifyMagic = false
	}
	if dir := strings.TrimSpace(flags.outputDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve output dir: %w", err)
		}
		opts.OutputDir = expanded
	}

	report, err := cca.NewService(opts).Run(runCtx, archive)
	if err != nil {
		return err
	}
	logger.Info("archive extracted", logging.Args(
		logging.String(logging.FieldArchive, archive),
		logging.String("text", report.TextPath),
		logging.String("debug", report.DebugPath),
		logging.Int64(logging.FieldOffset, report.Filter.Offset),
	)...)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "CCA Archive (%s) is now readable.\n", archive)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output created at:")
	fmt.Fprintln(out, report.TextPath)

	interactor := newInteractor(cfg.Extract.Pause, flags.noPause, cmd.InOrStdin(), out)
	if !interactor.Pauses() {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Press Enter to exit CCAViewer")
	return interactor.Acknowledge(runCtx)
}

func printHeader(w io.Writer) {
	fmt.Fprintln(w, "======================")
	fmt.Fprintln(w, "      CCAViewer       ")
	fmt.Fprintln(w, "======================")
}

func printUsage(w io.Writer, cfg *config.Config) {
	printHeader(w)
	fmt.Fprintln(w, "Usage: ccaviewer <archive.cca>")
	fmt.Fprintf(w, "Version - %s\n", version)
	fmt.Fprintln(w)
	printSupportedGames(w, cfg)
}

func printSupportedGames(w io.Writer, cfg *config.Config) {
	var games []config.Game
	if cfg != nil {
		games = cfg.Games
	}
	if len(games) == 0 {
		fmt.Fprintf(w, "Supported games: any title whose archives start with %q.\n", "CCA Copyright MDO")
		return
	}
	fmt.Fprintln(w, "Supported games:")
	for _, game := range games {
		if game.Notes != "" {
			fmt.Fprintf(w, "  - %s (%s)\n", game.Name, game.Notes)
		} else {
			fmt.Fprintf(w, "  - %s\n", game.Name)
		}
	}
}
