package cmd

import (
	"context"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newVaccinationsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vaccinations",
		Aliases: []string{"vax"},
		Short:   "Track pet vaccinations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <pet-id>",
			Short: "List vaccinations of a pet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, app, "Loading vaccinations...", func(ctx context.Context) ([]domain.Vaccination, error) {
					return app.vaccinations.List(ctx, args[0])
				}, view.VaccinationsDocument)
			},
		},
		newVaccinationFormCmd(app, false),
		newVaccinationFormCmd(app, true),
		&cobra.Command{
			Use:   "delete <vaccination-id>",
			Short: "Delete a vaccination entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.vaccinations.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				return writeDone(cmd, app, "Deleted vaccination %s.", args[0])
			},
		},
		&cobra.Command{
			Use:   "certificate <vaccination-id> <file>",
			Short: "Upload a vaccination certificate",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				upload, file, err := openUpload(args[1], nil)
				if err != nil {
					return err
				}
				defer file.Close()

				vaccination, err := app.vaccinations.UploadCertificate(cmd.Context(), args[0], upload)
				if err != nil {
					return err
				}
				return writeOutput(cmd, app, vaccination, view.VaccinationsDocument([]domain.Vaccination{vaccination}))
			},
		},
	)

	return cmd
}

// newVaccinationFormCmd builds "add <pet-id>" or "update <vaccination-id>".
// An update replaces the entry, so it needs the application date.
func newVaccinationFormCmd(app *app, update bool) *cobra.Command {
	var (
		input    domain.VaccinationInput
		applied  string
		nextDose string
	)

	cmd := &cobra.Command{
		Use:   "add <pet-id>",
		Short: "Record a vaccination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appliedAt, err := parseTime("applied", applied)
			if err != nil {
				return err
			}
			if appliedAt.IsZero() {
				appliedAt = app.now()
			}
			next, err := parseOptionalTime("next-dose", nextDose)
			if err != nil {
				return err
			}
			input.AppliedAt = appliedAt
			input.NextDoseAt = next

			var vaccination domain.Vaccination
			if update {
				vaccination, err = app.vaccinations.Update(cmd.Context(), args[0], input)
			} else {
				vaccination, err = app.vaccinations.Create(cmd.Context(), args[0], input)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, vaccination, view.VaccinationsDocument([]domain.Vaccination{vaccination}))
		},
	}

	cmd.Flags().StringVar(&input.Vaccine, "vaccine", "", "Vaccine name")
	cmd.Flags().StringVar(&input.Dose, "dose", "", "Dose label, e.g. booster")
	cmd.Flags().StringVar(&applied, "applied", "", "Application date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&nextDose, "next-dose", "", "Next dose date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.Veterinarian, "vet", "", "Veterinarian")
	cmd.Flags().StringVar(&input.Batch, "batch", "", "Vaccine batch")
	_ = cmd.MarkFlagRequired("vaccine")

	if update {
		cmd.Use = "update <vaccination-id>"
		cmd.Short = "Replace a vaccination entry"
		_ = cmd.MarkFlagRequired("applied")
	}

	return cmd
}

func newRecordsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Browse and add medical records",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <pet-id>",
			Short: "List medical records of a pet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, app, "Loading records...", func(ctx context.Context) ([]domain.MedicalRecord, error) {
					return app.records.List(ctx, args[0])
				}, view.MedicalRecordsDocument)
			},
		},
		&cobra.Command{
			Use:   "get <record-id>",
			Short: "Show one medical record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, app, "Loading record...", func(ctx context.Context) (domain.MedicalRecord, error) {
					return app.records.Get(ctx, args[0])
				}, func(record domain.MedicalRecord) view.Document {
					return view.MedicalRecordsDocument([]domain.MedicalRecord{record})
				})
			},
		},
		newRecordsAddCmd(app),
		&cobra.Command{
			Use:   "attach <record-id> <file>",
			Short: "Attach a file to a medical record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				upload, file, err := openUpload(args[1], nil)
				if err != nil {
					return err
				}
				defer file.Close()

				attachment, err := app.records.Attach(cmd.Context(), args[0], upload)
				if err != nil {
					return err
				}
				if app.asJSON {
					return writeJSON(cmd, attachment)
				}
				return writeDone(cmd, app, "Attached %s (%s).", attachment.FileName, attachment.URL)
			},
		},
	)

	return cmd
}

func newRecordsAddCmd(app *app) *cobra.Command {
	var (
		input domain.MedicalRecordInput
		date  string
	)

	cmd := &cobra.Command{
		Use:   "add <pet-id>",
		Short: "Add a medical record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordedAt, err := parseTime("date", date)
			if err != nil {
				return err
			}
			if recordedAt.IsZero() {
				recordedAt = app.now()
			}
			input.RecordedAt = recordedAt

			record, err := app.records.Create(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, record, view.MedicalRecordsDocument([]domain.MedicalRecord{record}))
		},
	}

	cmd.Flags().StringVar(&input.Kind, "type", "consultation", "Record type, e.g. consultation, exam, surgery")
	cmd.Flags().StringVar(&input.Title, "title", "", "Short title")
	cmd.Flags().StringVar(&input.Description, "description", "", "Details")
	cmd.Flags().StringVar(&input.Veterinarian, "vet", "", "Veterinarian")
	cmd.Flags().StringVar(&date, "date", "", "Record date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
