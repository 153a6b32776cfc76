package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", describeError(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pc",
		Short:         "PetCare CLI (pc): pets, health records and services from the terminal",
		Long:          "pc talks to the PetCare API: log in once, then manage pets, vaccinations, medical records, marketplace contracts, subscriptions, campaigns, feedback and reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVar(&app.asJSON, "json", false, "Print raw JSON instead of formatted output")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log requests to stderr")
	rootCmd.PersistentFlags().IntVar(&app.width, "width", 0, "Wrap formatted output at this many columns")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.logger.SetOutput(cmd.ErrOrStderr())
		if app.verbose {
			app.logger.SetLevel(logrus.DebugLevel)
		}
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRegisterCmd(app),
		newPetsCmd(app),
		newVaccinationsCmd(app),
		newRecordsCmd(app),
		newMarketCmd(app),
		newSubscriptionsCmd(app),
		newCampaignsCmd(app),
		newFeedbackCmd(app),
		newNotificationsCmd(app),
		newReportsCmd(app),
		newAPICmd(app),
	)

	return rootCmd
}

func describeError(err error) string {
	if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNoSession) {
		return err.Error() + "\nrun `pc login` to sign in"
	}
	return err.Error()
}
