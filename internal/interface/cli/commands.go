package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alem-hub/attendance-tracker/internal/application/tracker"
	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all subjects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.presenter(cmd).List(app.Store.List()))
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var attended, total int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subject",
		Long: `Add a subject. Existing counts can be given with --attended and --total.

Example:
  attendance add Linear Algebra --attended 3 --total 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Store.Add(cmd.Context(), tracker.AddSubject{
				Name:     strings.Join(args, " "),
				Attended: attended,
				Total:    total,
			})
			return app.report(cmd, rec, err)
		},
	}

	cmd.Flags().IntVar(&attended, "attended", 0, "classes already attended")
	cmd.Flags().IntVar(&total, "total", 0, "classes already held")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var (
		name            string
		attended, total int
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the name or counts of a subject",
		Long:  "Change the name or counts of a subject. Flags that are not given keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := app.Store.Get(attendance.ID(args[0]))
			if err != nil {
				return err
			}

			edit := tracker.EditSubject{
				ID:       current.ID,
				Name:     current.Name,
				Attended: current.Attended,
				Total:    current.Total,
			}
			if cmd.Flags().Changed("name") {
				edit.Name = name
			}
			if cmd.Flags().Changed("attended") {
				edit.Attended = attended
			}
			if cmd.Flags().Changed("total") {
				edit.Total = total
			}

			rec, err := app.Store.Edit(cmd.Context(), edit)
			return app.report(cmd, rec, err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new subject name")
	cmd.Flags().IntVar(&attended, "attended", 0, "new attended count")
	cmd.Flags().IntVar(&total, "total", 0, "new total count")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a subject",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Store.Get(attendance.ID(args[0]))
			if err != nil {
				return err
			}

			if !yes {
				question := fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", rec.Name)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			err = app.Store.Delete(cmd.Context(), rec.ID)
			if err != nil {
				if !shared.IsPersistenceWrite(err) {
					return err
				}
				app.warnWriteFailure(cmd, err)
				if !app.Store.Dirty() {
					return nil
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", rec.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

type counterOp func(ctx context.Context, id attendance.ID) (attendance.Record, error)

func newCounterCmd(app *App, use, short string, op counterOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := op(cmd.Context(), attendance.ID(args[0]))
			return app.report(cmd, rec, err)
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals over all subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.presenter(cmd).Summary(app.Store.Aggregate()))
			return nil
		},
	}
}
