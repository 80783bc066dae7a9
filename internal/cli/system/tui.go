package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(a), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
