package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wellplan/internal/cli/formatter"
	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/domain"
)

var errNoMessage = errors.New("at least one --message is required")

type planOptions struct {
	user        string
	minutes     int
	messages    []string
	mood        string
	focus       string
	timezone    string
	preferences []string
	constraints []string
	json        bool
}

func (o planOptions) request() (contract.PlanRequest, error) {
	var conv []domain.ConversationMessage
	for _, m := range o.messages {
		if strings.TrimSpace(m) == "" {
			continue
		}
		conv = append(conv, domain.ConversationMessage{Role: domain.RoleUser, Content: m})
	}
	if len(conv) == 0 {
		return contract.PlanRequest{}, errNoMessage
	}
	return contract.PlanRequest{
		Context: domain.UserContext{
			UserID:           o.user,
			AvailableMinutes: o.minutes,
			Mood:             o.mood,
			FocusArea:        o.focus,
			Timezone:         o.timezone,
			Preferences:      o.preferences,
			Constraints:      o.constraints,
		},
		Conversation: conv,
	}, nil
}

func newPlanCmd(app *App) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build today's plan from one or more check-in messages",
		Example: `  wellplan plan --user ana -m "Work has been relentless and I can't sleep"
  wellplan plan --user ana --minutes 30 -m "Feeling stiff" -m "Desk all day" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}
			return runPlan(cmd, app, req, opts.json)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.user, "user", "", "User ID")
	f.IntVar(&opts.minutes, "minutes", 0, fmt.Sprintf("Minutes available today (default %d)", domain.DefaultAvailableMinutes))
	f.StringArrayVarP(&opts.messages, "message", "m", nil, "Check-in message, repeat for several turns")
	f.StringVar(&opts.mood, "mood", "", "How you would describe your mood")
	f.StringVar(&opts.focus, "focus", "", "Area you want to focus on")
	f.StringVar(&opts.timezone, "timezone", "", "IANA timezone used for streaks (default UTC)")
	f.StringSliceVar(&opts.preferences, "prefer", nil, "Preferences, comma separated")
	f.StringSliceVar(&opts.constraints, "constraint", nil, "Constraints, comma separated")
	addJSONFlag(f, &opts.json)
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runPlan(cmd *cobra.Command, app *App, req contract.PlanRequest, asJSON bool) error {
	var resp *contract.PlanResponse
	err := withSpinner(cmd.Context(), app, cmd.ErrOrStderr(), "Putting your plan together", func(ctx context.Context) error {
		var err error
		resp, err = app.Plan.Run(ctx, req)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp))
	return nil
}
