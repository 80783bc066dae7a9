package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete an existing local database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, ok := ctx.Store.(*postgres.Store); ok {
			return fmt.Errorf("--force only applies to local databases")
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(ctx.Out, "Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, cli.Success("Initialized dayly storage at: "+ctx.Store.GetConfigPath()))
	fmt.Fprintln(ctx.Out, "Check in with 'dayly checkin' or set a goal with 'dayly goal set'.")
	return nil
}
