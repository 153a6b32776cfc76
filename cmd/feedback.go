package cmd

import (
	"context"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newFeedbackCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Rate providers and read reviews",
	}

	cmd.AddCommand(newFeedbackSendCmd(app), newFeedbackListCmd(app))

	return cmd
}

func newFeedbackSendCmd(app *app) *cobra.Command {
	var input domain.FeedbackInput

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Rate a provider from 1 to 5",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feedback, err := app.feedback.Send(cmd.Context(), input)
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, feedback, view.FeedbackDocument([]domain.Feedback{feedback}))
		},
	}

	cmd.Flags().StringVar(&input.ProviderID, "provider", "", "Provider id")
	cmd.Flags().StringVar(&input.ContractID, "contract", "", "Contract the review is about")
	cmd.Flags().IntVar(&input.Rating, "rating", 0, "Rating from 1 to 5")
	cmd.Flags().StringVar(&input.Comment, "comment", "", "Review text")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newFeedbackListCmd(app *app) *cobra.Command {
	var providerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, app, "Loading feedback...", func(ctx context.Context) ([]domain.Feedback, error) {
				return app.feedback.List(ctx, providerID)
			}, view.FeedbackDocument)
		},
	}

	cmd.Flags().StringVar(&providerID, "provider", "", "Only reviews of this provider")

	return cmd
}

func newNotificationsCmd(app *app) *cobra.Command {
	var unread bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, app, "Loading notifications...", func(ctx context.Context) ([]domain.Notification, error) {
				return app.notifications.List(ctx, unread)
			}, view.NotificationsDocument)
		},
	}
	listCmd.Flags().BoolVar(&unread, "unread", false, "Only unread notifications")

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "Read your notifications",
	}

	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "read <notification-id>",
			Short: "Mark a notification as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.notifications.MarkRead(cmd.Context(), args[0]); err != nil {
					return err
				}
				return writeDone(cmd, app, "Marked %s as read.", args[0])
			},
		},
		&cobra.Command{
			Use:   "read-all",
			Short: "Mark every notification as read",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.notifications.MarkAllRead(cmd.Context()); err != nil {
					return err
				}
				return writeDone(cmd, app, "All notifications marked as read.")
			},
		},
	)

	return cmd
}
