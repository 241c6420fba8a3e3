package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/sojus-client/internal/domain"
)

func newUsersCmd(a *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users (administrators only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.services.Admin.Users(cmd.Context(), domain.Role(strings.ToUpper(role)))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSUARIO\tNOMBRE\tROL\tEMAIL")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.DisplayName(), u.Role, dash(u.Email))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Only users holding this role")
	return cmd
}

func newAuditCmd(a *app) *cobra.Command {
	var ticketID int64
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail (administrators only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				items []domain.AuditEntry
				err   error
			)
			if ticketID > 0 {
				items, err = a.services.Admin.TicketHistory(cmd.Context(), ticketID)
			} else {
				items, err = a.services.Admin.Audit(cmd.Context())
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FECHA\tUSUARIO\tACCIÓN\tENTIDAD\tCAMBIO")
			for _, e := range items {
				change := e.NewValue
				if e.OldValue != "" {
					change = e.OldValue + " -> " + e.NewValue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s #%d\t%s\n", e.Timestamp, e.Username, e.Action, e.EntityName, e.EntityID, dash(change))
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&ticketID, "ticket", 0, "Only entries of this ticket")
	return cmd
}

func newCourtsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "courts",
		Short: "List courts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			courts, err := a.services.Admin.Courts(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tJUZGADO\tFUERO\tSECRETARÍA")
			for _, c := range courts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, dash(c.Jurisdiction), dash(c.Secretariat))
			}
			return w.Flush()
		},
	}
}
