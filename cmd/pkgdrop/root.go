package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/pkgdrop/internal/app"
	"github.com/five82/pkgdrop/internal/config"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath  string
	catalogPath string
	host        string
}

func (g *globalFlags) options(console bool) app.Options {
	return app.Options{
		ConfigPath:  g.configPath,
		CatalogPath: g.catalogPath,
		Host:        g.host,
		Version:     version,
		Console:     console,
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "pkgdrop",
		Short: "Send package installs to a device's remote installer",
		Long: "pkgdrop browses a package catalog and asks the Remote PKG Installer on a\n" +
			"device to download and install the selected package.\n\n" +
			"Run without a subcommand to start the terminal UI.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(false))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flags.catalogPath, "catalog", "", "catalog file, TOML or YAML (default built-in list)")
	pf.StringVar(&flags.host, "host", "", "device address, overrides the config file")

	cmd.AddCommand(
		newListCmd(flags),
		newInstallCmd(flags),
		newLogsCmd(flags),
		newVersionCmd(),
	)
	return cmd
}
