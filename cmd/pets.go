package cmd

import (
	"context"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPetsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pets",
		Aliases: []string{"pet"},
		Short:   "Manage pets",
	}

	cmd.AddCommand(
		newPetsListCmd(app),
		newPetsGetCmd(app),
		newPetsCreateCmd(app),
		newPetsUpdateCmd(app),
		newPetsDeleteCmd(app),
		newPetsPhotoCmd(app),
	)

	return cmd
}

func newPetsListCmd(app *app) *cobra.Command {
	var filter domain.PetFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, app, "Loading pets...", func(ctx context.Context) ([]domain.Pet, error) {
				return app.pets.List(ctx, filter)
			}, view.PetsDocument)
		},
	}

	cmd.Flags().StringVar(&filter.OwnerID, "owner", "", "Only pets of this owner")
	cmd.Flags().StringVar(&filter.Species, "species", "", "Only pets of this species")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Free-text search")

	return cmd
}

func newPetsGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <pet-id>",
		Short: "Show one pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, app, "Loading pet...", func(ctx context.Context) (domain.Pet, error) {
				return app.pets.Get(ctx, args[0])
			}, view.PetDocument)
		},
	}
}

type petFlags struct {
	input     domain.PetInput
	birthDate string
}

func (f *petFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input.Name, "name", "", "Pet name")
	cmd.Flags().StringVar(&f.input.Species, "species", "", "Species, e.g. dog or cat")
	cmd.Flags().StringVar(&f.input.Breed, "breed", "", "Breed")
	cmd.Flags().StringVar(&f.input.Sex, "sex", "", "Sex")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.input.WeightKg, "weight", 0, "Weight in kg")
	cmd.Flags().StringVar(&f.input.Notes, "notes", "", "Free-form notes")
}

func (f *petFlags) build() (domain.PetInput, error) {
	birth, err := parseOptionalTime("birth-date", f.birthDate)
	if err != nil {
		return domain.PetInput{}, err
	}
	input := f.input
	input.BirthDate = birth
	return input, nil
}

func newPetsCreateCmd(app *app) *cobra.Command {
	var flags petFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a pet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := flags.build()
			if err != nil {
				return err
			}

			pet, err := app.pets.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, pet, view.PetDocument(pet))
		},
	}

	flags.register(cmd)

	return cmd
}

func newPetsUpdateCmd(app *app) *cobra.Command {
	var flags petFlags

	cmd := &cobra.Command{
		Use:   "update <pet-id>",
		Short: "Update a pet; only the given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.build()
			if err != nil {
				return err
			}

			pet, err := app.pets.Update(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, pet, view.PetDocument(pet))
		},
	}

	flags.register(cmd)

	return cmd
}

func newPetsDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pet-id>",
		Short: "Delete a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.pets.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeDone(cmd, app, "Deleted pet %s.", args[0])
		},
	}
}

func newPetsPhotoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "photo <pet-id> <file>",
		Short: "Upload a pet photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, file, err := openUpload(args[1], nil)
			if err != nil {
				return err
			}
			defer file.Close()

			pet, err := app.pets.UploadPhoto(cmd.Context(), args[0], upload)
			if err != nil {
				return err
			}
			return writeOutput(cmd, app, pet, view.PetDocument(pet))
		},
	}
}
