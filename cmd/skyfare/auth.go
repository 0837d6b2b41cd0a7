package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"skyfare/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session tokens",
		Long:  "Log in and store the session tokens. The password is read from --password, SKYFARE_PASSWORD or the first line of stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("SKYFARE_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = line
			}

			return withApp(cmd, func(ctx context.Context, app *application) error {
				status, err := app.auth.Login(ctx, email, password)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if err := app.auth.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the stored session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored and when it expires",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				status, err := app.auth.Status(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	})

	return cmd
}

func printStatus(w io.Writer, status entity.AuthStatus) {
	if !status.LoggedIn {
		fmt.Fprintln(w, "Not logged in")
		return
	}

	fmt.Fprintln(w, "Logged in")
	if status.Subject != "" {
		fmt.Fprintf(w, "  user:    %s\n", status.Subject)
	}
	if !status.ExpiresAt.IsZero() {
		label := "expires"
		switch {
		case status.Expired(time.Now()):
			label = "expired"
		case status.ExpiringSoon:
			label = "expiring"
		}
		fmt.Fprintf(w, "  %s: %s\n", label, status.ExpiresAt.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(w, "  refresh: %t\n", status.HasRefreshToken)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
