package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/wellplan/internal/cli/formatter"
	"github.com/alexanderramin/wellplan/internal/domain"
)

var errNotInteractive = errors.New("checkin needs an interactive terminal, use `wellplan plan` instead")

// checkinValues backs the check-in form fields.
type checkinValues struct {
	user    string
	minutes string
	mood    string
	message string
}

func (v checkinValues) options() (planOptions, error) {
	opts := planOptions{
		user:     strings.TrimSpace(v.user),
		mood:     strings.TrimSpace(v.mood),
		messages: []string{v.message},
	}
	if s := strings.TrimSpace(v.minutes); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return planOptions{}, fmt.Errorf("invalid minutes %q", v.minutes)
		}
		opts.minutes = n
	}
	return opts, nil
}

func checkinForm(v *checkinValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Who is checking in?").
				Value(&v.user).
				Validate(validateRequired("a user id")),
			huh.NewInput().
				Title("Minutes available today").
				Placeholder(strconv.Itoa(domain.DefaultAvailableMinutes)).
				Value(&v.minutes).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Mood").
				Description("A word or two, optional").
				Value(&v.mood),
			huh.NewText().
				Title("What's on your mind?").
				Value(&v.message).
				Validate(validateRequired("a few words")),
		),
	).WithTheme(wellplanHuhTheme()).WithShowHelp(false)
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("enter %s", what)
		}
		return nil
	}
}

// validateMinutes accepts empty or a whole number of minutes within the plan limit.
func validateMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 || v > domain.MaxAvailableMinutes {
		return fmt.Errorf("enter 1 to %d minutes", domain.MaxAvailableMinutes)
	}
	return nil
}

func newCheckinCmd(app *App) *cobra.Command {
	var (
		userID string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Answer a few questions and get today's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}

			values := &checkinValues{user: userID}
			if err := checkinForm(values).RunWithContext(cmd.Context()); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Check-in cancelled."))
					return nil
				}
				return err
			}

			opts, err := values.options()
			if err != nil {
				return err
			}
			req, err := opts.request()
			if err != nil {
				return err
			}
			return runPlan(cmd, app, req, asJSON)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Prefill the user ID")
	addJSONFlag(cmd.Flags(), &asJSON)

	return cmd
}
