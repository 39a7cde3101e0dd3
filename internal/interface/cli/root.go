// Package cli is the command-line front end of the tracker. Each command
// loads the store, applies one operation and prints the affected records.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alem-hub/attendance-tracker/internal/application/tracker"
	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
	"github.com/alem-hub/attendance-tracker/pkg/logger"
)

// App carries the dependencies shared by all commands.
type App struct {
	Store *tracker.Store
	Log   *logger.Logger
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	if app.Log == nil {
		app.Log = logger.NewNop()
	}

	root := &cobra.Command{
		Use:   "attendance",
		Short: "Track class attendance per subject",
		Long: `Track attended and missed classes per subject and see how many
classes you must attend, or may skip, to stay above the requirement.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.Store.Load(cmd.Context())
		},
	}

	root.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newCounterCmd(app, "present", "Record an attended class", app.Store.RecordPresent),
		newCounterCmd(app, "absent", "Record a missed class", app.Store.RecordAbsent),
		newCounterCmd(app, "undo-present", "Remove one attended class", app.Store.UndoAttended),
		newCounterCmd(app, "undo-absent", "Remove one missed class", app.Store.UndoAbsent),
		newStatsCmd(app),
	)
	return root
}

func (a *App) presenter(cmd *cobra.Command) *Presenter {
	return NewPresenter(cmd.OutOrStdout(), a.Store.Policy())
}

// report prints rec. A failed save is shown as a warning and does not fail
// the command; any other error does.
func (a *App) report(cmd *cobra.Command, rec attendance.Record, err error) error {
	p := a.presenter(cmd)
	if err != nil {
		if !shared.IsPersistenceWrite(err) {
			return err
		}
		a.warnWriteFailure(cmd, err)
		if !a.Store.Dirty() {
			// rolled back
			return nil
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.Card(rec))
	return nil
}

func (a *App) warnWriteFailure(cmd *cobra.Command, err error) {
	a.Log.Warn("write failed", logger.Err(err))
	msg := "change could not be saved and was discarded"
	if a.Store.Dirty() {
		msg = "change could not be saved and may not survive a restart"
	}
	fmt.Fprintln(cmd.ErrOrStderr(), a.presenter(cmd).Warning(msg+": "+err.Error()))
}

// confirm asks a yes/no question on the command input. Anything but y/yes
// is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
