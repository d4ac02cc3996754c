package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ccaviewer/internal/cca"
	"ccaviewer/internal/config"
	"ccaviewer/internal/editor"
	"ccaviewer/internal/logging"
	"ccaviewer/internal/textutil"
)

const stringsRule = "--------------------------"

func newHexdumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hexdump <archive>",
		Short: "Show the archive as offset, hex and text columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := editor.Open(args[0])
			if err != nil {
				return err
			}
			return editor.Hexdump(cmd.OutOrStdout(), archive.Content)
		},
	}
}

func newStringsCommand() *cobra.Command {
	var charset string
	cmd := &cobra.Command{
		Use:   "strings <archive>",
		Short: "List the NUL-separated strings in the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := textutil.NewDecoder(charset)
			if err != nil {
				return err
			}
			archive, err := editor.Open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Strings in the CCA Archive:")
			fmt.Fprintln(out, stringsRule)
			for i, s := range editor.Strings(archive.Content, dec) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&charset, "charset", textutil.DefaultCharset, "Charset used to decode strings ("+strings.Join(textutil.Charsets(), ", ")+")")
	return cmd
}

func newCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <archive> <word>",
		Short: "Count occurrences of a word and list their offsets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := editor.Open(args[0])
			if err != nil {
				return err
			}
			offsets, err := editor.Count(archive.Content, []byte(args[1]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "'%s' is found %d times in the archive.\n", args[1], len(offsets))
			if len(offsets) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(offsets))
			for i, offset := range offsets {
				rows = append(rows, []string{strconv.Itoa(i + 1), fmt.Sprintf("0x%08X", offset)})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Offset"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
}

func newReplaceCommand(ctx *commandContext) *cobra.Command {
	var backup bool
	cmd := &cobra.Command{
		Use:   "replace <archive> <old> <new>",
		Short: "Replace text in place (the new text may not be longer)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := editor.Open(args[0])
			if err != nil {
				return err
			}
			n, err := archive.Replace([]byte(args[1]), []byte(args[2]))
			if err != nil {
				return err
			}
			if err := saveArchive(cmd, ctx, archive, backup); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Text replaced successfully (%d occurrences).\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&backup, "backup", false, "Write <archive>.bak before saving")
	return cmd
}

func newPatchCommand(ctx *commandContext) *cobra.Command {
	var backup bool
	cmd := &cobra.Command{
		Use:   "patch <archive> <hex-offset> <hex-byte>",
		Short: "Overwrite a single byte",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := editor.ParseHexOffset(args[1])
			if err != nil {
				return err
			}
			value, err := editor.ParseHexByte(args[2])
			if err != nil {
				return err
			}
			archive, err := editor.Open(args[0])
			if err != nil {
				return err
			}
			old, err := archive.Patch(offset, value)
			if err != nil {
				return err
			}
			if archive.Dirty() {
				if err := saveArchive(cmd, ctx, archive, backup); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Offset 0x%08X updated successfully (0x%02X -> 0x%02X).\n", offset, old, value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&backup, "backup", false, "Write <archive>.bak before saving")
	return cmd
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <archive>",
		Short: "Show archive size and header details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			archive, err := editor.Open(args[0])
			if err != nil {
				return err
			}
			header, headerErr := cca.ReadMagic(bytes.NewReader(archive.Content), cfg.Extract.MagicLength)
			number := strconv.FormatInt(header.Number, 10)
			if headerErr != nil {
				number = "invalid (" + headerErr.Error() + ")"
			}
			rows := [][]string{
				{"Archive", archive.Path},
				{"Size", fmt.Sprintf("%d bytes", archive.Size())},
				{"Header", textutil.KeepASCIIPrintable(string(header.Raw))},
				{"Header number", number},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func saveArchive(cmd *cobra.Command, ctx *commandContext, archive *editor.Archive, backup bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	runCtx, logger, err := ctx.commandScope(cmd)
	if err != nil {
		return err
	}
	opts := saveOptionsFromConfig(cfg)
	opts.Backup = opts.Backup || backup
	opts.Logger = logger
	if err := archive.Save(runCtx, opts); err != nil {
		return err
	}
	logger.Debug("changes saved", logging.Args(logging.Bool("backup", opts.Backup))...)
	fmt.Fprintln(cmd.OutOrStdout(), "Changes saved successfully.")
	return nil
}

func saveOptionsFromConfig(cfg *config.Config) editor.SaveOptions {
	return editor.SaveOptions{
		Backup:      cfg.Editor.Backup,
		LockTimeout: time.Duration(cfg.Editor.LockTimeoutSeconds) * time.Second,
	}
}
