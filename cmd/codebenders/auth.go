package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/route"
	"codebenders/internal/dto"
)

// readSecret returns value, or the first line of stdin when value is empty.
func readSecret(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readSecret(cmd, password, "Password: ")
			if err != nil {
				return err
			}
			user, err := panel.NewAuth(a.deps).Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			return a.out.data(user, func(w io.Writer) {
				a.out.success("Logged in as %s", user.DisplayName())
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin when omitted)")
	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var form panel.SignupForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readSecret(cmd, form.Password, "Password: ")
			if err != nil {
				return err
			}
			form.Password = pw
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = pw
			}
			user, err := panel.NewAuth(a.deps).Signup(cmd.Context(), form)
			if err != nil {
				return err
			}
			return a.out.data(user, func(w io.Writer) {
				a.out.success("Account created for %s. You can now log in.", user.Email)
			})
		},
	}
	cmd.Flags().StringVarP(&form.Name, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password (read from stdin when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	return cmd
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Email a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := panel.NewAuth(a.deps).ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			a.out.success("If %s has an account, a reset link is on its way.", email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var token string
	var form panel.ResetForm
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.deps.Router.Navigate(route.ResetPasswordLink(token)); err != nil {
				return err
			}
			pw, err := readSecret(cmd, form.Password, "New password: ")
			if err != nil {
				return err
			}
			form.Password = pw
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = pw
			}
			if err := panel.NewAuth(a.deps).ResetPassword(cmd.Context(), form); err != nil {
				return err
			}
			a.out.success("Password updated. Log in with your new password.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "reset token from the email link")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "new password (read from stdin when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := panel.NewAuth(a.deps).Logout(cmd.Context()); err != nil {
				return err
			}
			a.out.success("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			user := a.state.User()
			if remote || user == nil {
				u, err := a.deps.Auth.Me(cmd.Context())
				if err != nil {
					return err
				}
				user = u
			}
			return a.out.data(user, func(w io.Writer) {
				printUser(w, user, a.state.CurrentProject())
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the backend instead of the local session")
	return cmd
}

func printUser(w io.Writer, u *dto.User, project *dto.Project) {
	fmt.Fprintf(w, "Name:    %s\n", u.DisplayName())
	fmt.Fprintf(w, "Email:   %s\n", u.Email)
	if u.Id != "" {
		fmt.Fprintf(w, "ID:      %s\n", u.Id)
	}
	if project != nil {
		fmt.Fprintf(w, "Project: %s (%s)\n", project.Name, project.Id)
	}
}
