package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		email         string
		password      string
		role          string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := resolvePassword(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			creds := domain.Credentials{Email: email, Password: secret}
			if role != "" {
				parsed, err := domain.ParseRole(role)
				if err != nil {
					return err
				}
				creds.Role = parsed
			}
			var session domain.Session
			return show(cmd, app, "Logging in...", func(ctx context.Context) (domain.User, error) {
				var err error
				session, err = app.auth.Login(ctx, creds)
				return session.User, err
			}, func(domain.User) view.Document {
				return view.SessionDocument(session, app.now())
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().StringVar(&role, "role", "", "Log in as this role when the account has several")
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget stored tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return writeDone(cmd, app, "Logged out.")
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var session domain.Session
			return show(cmd, app, "Loading profile...", func(ctx context.Context) (domain.User, error) {
				if refresh {
					if _, err := app.auth.Me(ctx); err != nil {
						return domain.User{}, err
					}
				}
				var err error
				session, err = app.auth.Current(ctx)
				return session.User, err
			}, func(domain.User) view.Document {
				return view.SessionDocument(session, app.now())
			})
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the profile from the API instead of the local copy")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var (
		reg           domain.Registration
		role          string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a PetCare account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := resolvePassword(cmd, reg.Password, passwordStdin)
			if err != nil {
				return err
			}
			reg.Password = secret

			parsed, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			reg.Role = parsed

			user, err := app.auth.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			if app.asJSON {
				return writeJSON(cmd, user)
			}
			return writeDone(cmd, app, "Registered %s as %s.", user.Email, user.Role.Label())
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleClient), "Account role: client, petshop, supplier, company or admin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

func resolvePassword(cmd *cobra.Command, password string, fromStdin bool) (string, error) {
	if !fromStdin {
		if password == "" {
			return "", errors.New("a password is required: pass --password or --password-stdin")
		}
		return password, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password from stdin is empty")
	}
	return line, nil
}
