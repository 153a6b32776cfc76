package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newReportsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Business reports and dashboards",
	}

	cmd.AddCommand(newReportsGetCmd(app), newReportsDashboardCmd(app))

	return cmd
}

func newReportsGetCmd(app *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:       "get <sales|services|vaccinations|subscriptions|campaigns>",
		Short:     "Fetch a report for a date range",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sales", "services", "vaccinations", "subscriptions", "campaigns"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseTime("from", from)
			if err != nil {
				return err
			}
			toDate, err := parseTime("to", to)
			if err != nil {
				return err
			}

			kind := domain.ReportKind(args[0])
			return show(cmd, app, fmt.Sprintf("Building %s report...", kind), func(ctx context.Context) (domain.Report, error) {
				return app.reports.Get(ctx, kind, fromDate, toDate)
			}, view.ReportDocument)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")

	return cmd
}

func newReportsDashboardCmd(app *app) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := domain.Role(role)
			if target == "" {
				session, err := app.auth.Current(cmd.Context())
				if err != nil {
					return err
				}
				target = session.User.Role
			}

			return show(cmd, app, "Loading dashboard...", func(ctx context.Context) (domain.DashboardSummary, error) {
				return app.reports.Dashboard(ctx, target)
			}, view.DashboardDocument)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Dashboard role, defaults to the logged-in user's role")

	return cmd
}
