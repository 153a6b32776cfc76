package cmd

import (
	"context"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newMarketCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Find providers and contract services",
	}

	cmd.AddCommand(
		newMarketProvidersCmd(app),
		&cobra.Command{
			Use:   "provider <provider-id>",
			Short: "Show a provider and its services",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, app, "Loading provider...", func(ctx context.Context) (domain.ServiceProvider, error) {
					return app.market.GetProvider(ctx, args[0])
				}, func(provider domain.ServiceProvider) view.Document {
					return view.ProvidersDocument([]domain.ServiceProvider{provider})
				})
			},
		},
		newMarketContractCmd(app),
		&cobra.Command{
			Use:   "contracts",
			Short: "List your service contracts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return show(cmd, app, "Loading contracts...", app.market.ListContracts, view.ContractsDocument)
			},
		},
		&cobra.Command{
			Use:   "cancel <contract-id>",
			Short: "Cancel a service contract",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				contract, err := app.market.CancelContract(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd, app, contract, view.ContractsDocument([]domain.ServiceContract{contract}))
			},
		},
	)

	return cmd
}

func newMarketProvidersCmd(app *app) *cobra.Command {
	var filter domain.ProviderFilter

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Search service providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, app, "Searching providers...", func(ctx context.Context) ([]domain.ServiceProvider, error) {
				return app.market.ListProviders(ctx, filter)
			}, view.ProvidersDocument)
		},
	}

	cmd.Flags().StringVar(&filter.Kind, "type", "", "Provider type, e.g. petshop or supplier")
	cmd.Flags().StringVar(&filter.City, "city", "", "City")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Service category, e.g. grooming")

	return cmd
}

func newMarketContractCmd(app *app) *cobra.Command {
	var (
		req  domain.ContractRequest
		when string
	)

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Contract a provider service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scheduled, err := parseTime("at", when)
			if err != nil {
				return err
			}
			req.ScheduledAt = scheduled

			contract, err := app.market.Contract(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, contract, view.ContractsDocument([]domain.ServiceContract{contract}))
		},
	}

	cmd.Flags().StringVar(&req.ProviderID, "provider", "", "Provider id")
	cmd.Flags().StringVar(&req.ServiceID, "service", "", "Service id")
	cmd.Flags().StringVar(&req.PetID, "pet", "", "Pet the service is for")
	cmd.Flags().StringVar(&when, "at", "", "Appointment time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes for the provider")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}
