package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/keyring"
	"github.com/julianstephens/dayly/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string without a password."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("%w: keep the password in ~/.pgpass or PGPASSWORD", err)
		}
		return err
	}

	fmt.Fprintln(ctx.Out, cli.Success("Connection string stored in OS keyring"))
	fmt.Fprintln(ctx.Out, "  Run dayly with --config postgres to use it.")
	return nil
}

// KeyringDeleteCmd removes the stored connection string
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}

	fmt.Fprintln(ctx.Out, cli.Success("Connection string deleted from OS keyring"))
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Fprintln(ctx.Out, "❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Fprintln(ctx.Out, cli.Success("OS keyring is available"))

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Fprintln(ctx.Out, cli.Success("Connection string is stored in keyring"))
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(ctx.Out, "ℹ No connection string stored in keyring")
	}
	return nil
}
