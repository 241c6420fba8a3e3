package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/service"
	"github.com/spec-kit/sojus-client/internal/worker"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

func newTicketsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket", "t"},
		Short:   "Browse and work on tickets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the tickets visible to the current user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tickets, err := await(cmd.Context(), a.services.Tickets.OpenList(cmd.Context()))
				if err != nil {
					return err
				}
				return printTickets(a.out, tickets)
			},
		},
		&cobra.Command{
			Use:   "mine",
			Short: "List the tickets tied to the current user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tickets, err := a.services.Tickets.Mine(cmd.Context())
				if err != nil {
					return err
				}
				return printTickets(a.out, tickets)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one ticket with its log",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				view, err := openTicket(cmd.Context(), a, args[0])
				if err != nil {
					return err
				}
				return printTicket(a.out, view)
			},
		},
		&cobra.Command{
			Use:   "actions <id>",
			Short: "List the statuses the current user may move a ticket to",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				view, err := openTicket(cmd.Context(), a, args[0])
				if err != nil {
					return err
				}
				if len(view.Actions) == 0 {
					fmt.Fprintln(a.out, "Sin acciones disponibles")
					return nil
				}
				for _, status := range view.Actions {
					fmt.Fprintf(a.out, "%s\t%s\n", status, status.Label())
				}
				return nil
			},
		},
		newTicketCreateCmd(a),
		newTicketStatusCmd(a),
	)
	return cmd
}

func newTicketCreateCmd(a *app) *cobra.Command {
	var sub domain.TicketSubmission
	var priority, channel string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub.Priority = domain.TicketPriority(strings.ToUpper(priority))
			sub.Channel = domain.TicketChannel(strings.ToUpper(channel))
			ticket, err := a.services.Tickets.Create(cmd.Context(), sub)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Ticket #%d creado (%s, prioridad %s)\n", ticket.ID, ticket.Status.Label(), ticket.Priority)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sub.Subject, "subject", "s", "", "Subject")
	cmd.Flags().StringVarP(&sub.Description, "description", "d", "", "Description")
	cmd.Flags().StringVar(&priority, "priority", string(domain.TicketPriorityMedium), "BAJA, MEDIA or ALTA")
	cmd.Flags().StringVar(&channel, "channel", string(domain.ChannelMobileApp), "Channel the request came in through")
	return cmd
}

func newTicketStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a ticket to another status",
		Long: `Move a ticket to another status.

Valid targets are SOLICITADO, ASIGNADO, EN_CURSO and CERRADO; use
'sojus tickets actions <id>' to see which ones apply to a ticket.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := domain.TicketStatus(strings.ToUpper(args[1]))
			if !target.Valid() {
				return apperrors.NewValidationError(fmt.Sprintf("Estado desconocido: %s", args[1]), nil)
			}
			view, err := openTicket(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			updated, err := a.services.Tickets.ChangeStatus(cmd.Context(), view.Ticket, target)
			if err != nil {
				return err
			}
			return printTicket(a.out, updated)
		},
	}
}

func openTicket(ctx context.Context, a *app, raw string) (*service.TicketView, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Identificador inválido: %s", raw), nil)
	}
	return await(ctx, a.services.Tickets.OpenDetail(ctx, id))
}

// await blocks on a background load and returns its outcome. The load is
// cancelled when ctx ends first.
func await[T any](ctx context.Context, task *worker.Task[T]) (T, error) {
	snap, err := task.Wait(ctx)
	if err != nil {
		task.Cancel()
		var zero T
		return zero, err
	}
	switch snap.State {
	case worker.StateSuccess:
		return snap.Data, nil
	case worker.StateCancelled:
		if snap.Err == nil {
			return snap.Data, context.Canceled
		}
	}
	return snap.Data, snap.Err
}

func printTickets(out io.Writer, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		fmt.Fprintln(out, "No hay tickets")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tESTADO\tPRIORIDAD\tASUNTO\tJUZGADO\tTÉCNICO")
	for _, t := range tickets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Subject, dash(t.Court), dash(t.Assignee))
	}
	return w.Flush()
}

func printTicket(out io.Writer, view *service.TicketView) error {
	t := view.Ticket
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ticket:\t#%d\n", t.ID)
	fmt.Fprintf(w, "Asunto:\t%s\n", t.Subject)
	fmt.Fprintf(w, "Estado:\t%s\n", t.Status.Label())
	fmt.Fprintf(w, "Prioridad:\t%s\n", t.Priority)
	fmt.Fprintf(w, "Canal:\t%s\n", dash(string(t.Channel)))
	fmt.Fprintf(w, "Juzgado:\t%s\n", dash(t.Court))
	fmt.Fprintf(w, "Solicitante:\t%s\n", dash(t.Requester))
	fmt.Fprintf(w, "Técnico:\t%s\n", dash(t.Assignee))
	fmt.Fprintf(w, "Equipo:\t%s\n", dash(t.Hardware))
	fmt.Fprintf(w, "Creado:\t%s\n", t.CreatedAt)
	if !t.ClosedAt.IsZero() {
		fmt.Fprintf(w, "Cerrado:\t%s\n", t.ClosedAt)
	}
	if len(view.Actions) > 0 {
		targets := make([]string, len(view.Actions))
		for i, s := range view.Actions {
			targets[i] = string(s)
		}
		fmt.Fprintf(w, "Acciones:\t%s\n", strings.Join(targets, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if t.Description != "" {
		fmt.Fprintf(out, "\n%s\n", t.Description)
	}
	if t.Log != "" {
		fmt.Fprintf(out, "\nBitácora:\n%s", t.Log)
		if !strings.HasSuffix(t.Log, "\n") {
			fmt.Fprintln(out)
		}
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
