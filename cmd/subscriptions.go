package cmd

import (
	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/spf13/cobra"
)

func newSubscriptionsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"sub"},
		Short:   "Manage your PetCare plan",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "plans",
			Short: "List available plans",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return show(cmd, app, "Loading plans...", app.subscriptions.Plans, view.PlansDocument)
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Show the active subscription",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return show(cmd, app, "Loading subscription...", app.subscriptions.Current, view.SubscriptionDocument)
			},
		},
		&cobra.Command{
			Use:   "subscribe <plan-id>",
			Short: "Subscribe to a plan",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sub, err := app.subscriptions.Subscribe(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd, app, sub, view.SubscriptionDocument(sub))
			},
		},
		&cobra.Command{
			Use:   "cancel <subscription-id>",
			Short: "Cancel a subscription",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sub, err := app.subscriptions.Cancel(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd, app, sub, view.SubscriptionDocument(sub))
			},
		},
	)

	return cmd
}
