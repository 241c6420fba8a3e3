package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session in the credential store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("SOJUS_PASSWORD")
			}
			res := a.services.Auth.Login(cmd.Context(), username, password)
			if !res.Success {
				return errors.New(res.Message)
			}
			fmt.Fprintf(a.out, "Bienvenido, %s (%s)\n", res.User.DisplayName(), res.User.Role.Label())
			fmt.Fprintf(a.out, "Inicio: %s\n", a.services.Auth.Home())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (defaults to SOJUS_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.services.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user as confirmed by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := a.services.Auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Usuario:\t%s\n", profile.User.Username)
			fmt.Fprintf(w, "Nombre:\t%s\n", profile.User.DisplayName())
			fmt.Fprintf(w, "Rol:\t%s\n", profile.User.Role.Label())
			if profile.User.Email != "" {
				fmt.Fprintf(w, "Email:\t%s\n", profile.User.Email)
			}
			if profile.ExpiresAt != nil {
				fmt.Fprintf(w, "Vence:\t%s\n", profile.ExpiresAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newViewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the screens the current session may open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := a.services.Auth.Current()
			if !current.Authenticated() {
				fmt.Fprintln(a.out, "Sin sesión. Ejecute 'sojus login'.")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUTA\tVISTA\tTÍTULO")
			for _, e := range a.services.Auth.Views() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Route, e.View, e.Title)
			}
			return w.Flush()
		},
	}
}
