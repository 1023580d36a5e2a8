package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/pkgdrop/internal/config"
	"github.com/five82/pkgdrop/internal/logtail"
)

const defaultLogLines = 50

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the pkgdrop log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			entries, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No log entries in %s.\n", cfg.LogFile)
				return nil
			}
			if !raw {
				entries = logtail.FormatLines(entries)
			}
			fmt.Fprintln(out, strings.Join(entries, "\n"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON entries as written")
	return cmd
}
