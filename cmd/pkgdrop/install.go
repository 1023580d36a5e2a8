package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/pkgdrop/internal/app"
	"github.com/five82/pkgdrop/internal/catalog"
)

func newInstallCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "install <id>",
		Short: "Install one catalog package on the device",
		Long: "Send one install request for the package with the given catalog ID.\n" +
			"The device address comes from --host or the config file.",
		Example: "  pkgdrop install --host 192.168.1.50 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid package id %q", args[0])
			}

			env, err := app.Prepare(flags.options(true))
			if err != nil {
				return err
			}
			defer env.Close()

			pkg, ok := catalog.Find(env.Catalog, id)
			if !ok {
				return fmt.Errorf("no package with id %d", id)
			}

			if err := env.Session.Install(cmd.Context(), env.Config.Host, pkg); err != nil {
				// The user sees the same message the TUI shows; the cause
				// is already logged.
				return errors.New(env.Store.Snapshot().Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), env.Store.Snapshot().Status)
			return nil
		},
	}
}
