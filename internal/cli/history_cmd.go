package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wellplan/internal/cli/formatter"
	"github.com/alexanderramin/wellplan/internal/contract"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		userID string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show life quality history and streak for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewHistoryRequest(userID)
			if cmd.Flags().Changed("limit") {
				req.Limit = limit
			}

			resp, err := app.History.History(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(resp, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().IntVar(&limit, "limit", 7, "Number of snapshots to show")
	addJSONFlag(cmd.Flags(), &asJSON)
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
