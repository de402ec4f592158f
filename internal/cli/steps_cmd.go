package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wellplan/internal/cli/formatter"
)

func newStepsCmd(app *App) *cobra.Command {
	var (
		userID string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "steps [session-id]",
		Short: "Show the step log of a session, or of the user's latest session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var sessionID string
			switch {
			case len(args) == 1:
				sessionID = args[0]
			case userID != "":
				sess, err := app.History.LatestSession(ctx, userID)
				if err != nil {
					return fmt.Errorf("finding latest session for %s: %w", userID, err)
				}
				sessionID = sess.ID
			default:
				return errors.New("pass a session id or --user")
			}

			log, err := app.History.Steps(ctx, sessionID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), log)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunLog(log))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Show the latest session of this user")
	addJSONFlag(cmd.Flags(), &asJSON)

	return cmd
}
