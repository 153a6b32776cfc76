package cmd

import (
	"context"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCampaignsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage promotional campaigns",
	}

	cmd.AddCommand(
		newCampaignsListCmd(app),
		&cobra.Command{
			Use:   "get <campaign-id>",
			Short: "Show one campaign",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, app, "Loading campaign...", func(ctx context.Context) (domain.Campaign, error) {
					return app.campaigns.Get(ctx, args[0])
				}, func(campaign domain.Campaign) view.Document {
					return view.CampaignsDocument([]domain.Campaign{campaign})
				})
			},
		},
		newCampaignFormCmd(app, false),
		newCampaignFormCmd(app, true),
		&cobra.Command{
			Use:   "delete <campaign-id>",
			Short: "Delete a campaign",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.campaigns.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				return writeDone(cmd, app, "Deleted campaign %s.", args[0])
			},
		},
		&cobra.Command{
			Use:   "banner <campaign-id> <file>",
			Short: "Upload a campaign banner",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				upload, file, err := openUpload(args[1], nil)
				if err != nil {
					return err
				}
				defer file.Close()

				campaign, err := app.campaigns.UploadBanner(cmd.Context(), args[0], upload)
				if err != nil {
					return err
				}
				return writeOutput(cmd, app, campaign, view.CampaignsDocument([]domain.Campaign{campaign}))
			},
		},
	)

	return cmd
}

func newCampaignsListCmd(app *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, app, "Loading campaigns...", func(ctx context.Context) ([]domain.Campaign, error) {
				return app.campaigns.List(ctx, status)
			}, view.CampaignsDocument)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only campaigns with this status, e.g. active")

	return cmd
}

// newCampaignFormCmd builds "create", or "update <campaign-id>" which only
// sends the flags that were given.
func newCampaignFormCmd(app *app, update bool) *cobra.Command {
	var (
		input    domain.CampaignInput
		audience string
		starts   string
		ends     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if audience != "" {
				role, err := domain.ParseRole(audience)
				if err != nil {
					return err
				}
				input.Audience = role
			}

			var err error
			if input.StartsAt, err = parseOptionalTime("starts", starts); err != nil {
				return err
			}
			if input.EndsAt, err = parseOptionalTime("ends", ends); err != nil {
				return err
			}

			var campaign domain.Campaign
			if update {
				campaign, err = app.campaigns.Update(cmd.Context(), args[0], input)
			} else {
				campaign, err = app.campaigns.Create(cmd.Context(), input)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, campaign, view.CampaignsDocument([]domain.Campaign{campaign}))
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "Campaign title")
	cmd.Flags().StringVar(&input.Description, "description", "", "Campaign text")
	cmd.Flags().StringVar(&audience, "audience", "", "Target role, e.g. client")
	cmd.Flags().StringVar(&starts, "starts", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ends, "ends", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&input.Discount, "discount", 0, "Discount percentage")

	if update {
		cmd.Use = "update <campaign-id>"
		cmd.Short = "Change a campaign"
		cmd.Args = cobra.ExactArgs(1)
	} else {
		_ = cmd.MarkFlagRequired("title")
	}

	return cmd
}
