package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wellplan/internal/service"
)

// App holds the services the commands run against.
type App struct {
	Plan    service.PlanService
	History service.HistoryService

	// IsInteractive reports whether both ends of the terminal are a TTY.
	// Spinners and the check-in form are only used when it returns true.
	IsInteractive func() bool

	// Now is used for relative timestamps. Defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "wellplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wellplan",
		Short:         "Turn a short check-in into a small, evidence-backed plan for today",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newCheckinCmd(app),
		newHistoryCmd(app),
		newStepsCmd(app),
	)

	return root
}
