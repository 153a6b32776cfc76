package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/spf13/cobra"
)

// show loads a value, behind a spinner unless --json is set, and prints it.
func show[T any](cmd *cobra.Command, app *app, label string, load func(context.Context) (T, error), document func(T) view.Document) error {
	var (
		result T
		err    error
	)
	if app.asJSON {
		result, err = load(cmd.Context())
	} else {
		result, err = loadWithSpinner(cmd.Context(), cmd.ErrOrStderr(), label, load)
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd, app, result, document(result))
}

func writeOutput(cmd *cobra.Command, app *app, value any, doc view.Document) error {
	if app.asJSON {
		return writeJSON(cmd, value)
	}

	rendered, err := app.render(doc, view.Options{Now: app.now(), Width: app.width})
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeDone(cmd *cobra.Command, app *app, format string, args ...any) error {
	if app.asJSON {
		return writeJSON(cmd, map[string]string{"status": "ok", "message": fmt.Sprintf(format, args...)})
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	return err
}
