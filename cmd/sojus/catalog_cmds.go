package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/service"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

func newInventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Browse and register hardware and software",
	}

	hardware := &cobra.Command{
		Use:   "hardware",
		Short: "List hardware assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := await(cmd.Context(), a.services.Inventory.Open(cmd.Context()))
			if err != nil {
				return err
			}
			return printHardware(a.out, inv.Hardware)
		},
	}
	hardware.AddCommand(newHardwareAddCmd(a))

	software := &cobra.Command{
		Use:   "software",
		Short: "List software licences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := await(cmd.Context(), a.services.Inventory.Open(cmd.Context()))
			if err != nil {
				return err
			}
			return printSoftware(a.out, inv.Software)
		},
	}
	software.AddCommand(newSoftwareAddCmd(a))

	cmd.AddCommand(hardware, software)
	return cmd
}

func newHardwareAddCmd(a *app) *cobra.Command {
	var hw domain.Hardware
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a hardware asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.services.Inventory.AddHardware(cmd.Context(), hw)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Equipo #%d registrado (%s)\n", created.ID, created.InventoryNumber)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&hw.InventoryNumber, "inventory-number", "", "Inventory number")
	f.StringVar(&hw.SerialNumber, "serial", "", "Serial number")
	f.StringVar(&hw.Class, "class", "", "Class")
	f.StringVar(&hw.Type, "type", "", "Type")
	f.StringVar(&hw.Brand, "brand", "", "Brand")
	f.StringVar(&hw.Model, "model", "", "Model")
	f.StringVar(&hw.State, "state", "", "State (server default ACTIVO)")
	f.StringVar(&hw.Location, "location", "", "Physical location")
	f.StringVar(&hw.Notes, "notes", "", "Notes")
	return cmd
}

func newSoftwareAddCmd(a *app) *cobra.Command {
	var sw domain.Software
	var expires string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a software licence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if expires != "" {
				d, err := parseDateFlag("expires", expires)
				if err != nil {
					return err
				}
				sw.ExpiresOn = d
			}
			created, err := a.services.Inventory.AddSoftware(cmd.Context(), sw)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Software #%d registrado (%s)\n", created.ID, created.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&sw.Name, "name", "", "Product name")
	f.StringVar(&sw.Version, "version", "", "Version")
	f.StringVar(&sw.Vendor, "vendor", "", "Vendor")
	f.StringVar(&sw.LicenseType, "license-type", "", "Licence type")
	f.StringVar(&sw.LicenseNumber, "license-number", "", "Licence number")
	f.IntVar(&sw.LicenseCount, "licenses", 0, "Number of seats")
	f.StringVar(&expires, "expires", "", "Expiry date (YYYY-MM-DD)")
	f.StringVar(&sw.State, "state", "", "State")
	return cmd
}

func newContractsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Browse and register vendor contracts",
	}

	var days int
	expiring := &cobra.Command{
		Use:   "expiring",
		Short: "List contracts ending soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.services.Contracts.Expiring(cmd.Context(), days)
			if err != nil {
				return err
			}
			return printContracts(a.out, items)
		},
	}
	expiring.Flags().IntVar(&days, "days", service.DefaultExpiringDays, "Look-ahead window in days")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List active contracts ordered by end date",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				items, err := a.services.Contracts.List(cmd.Context())
				if err != nil {
					return err
				}
				return printContracts(a.out, items)
			},
		},
		expiring,
		newContractCreateCmd(a),
	)
	return cmd
}

func newContractCreateCmd(a *app) *cobra.Command {
	var c domain.Contract
	var starts, ends string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if starts != "" {
				if c.StartsOn, err = parseDateFlag("starts", starts); err != nil {
					return err
				}
			}
			if ends != "" {
				if c.EndsOn, err = parseDateFlag("ends", ends); err != nil {
					return err
				}
			}
			created, err := a.services.Contracts.Create(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Contrato #%d registrado (%s)\n", created.ID, created.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Contract name")
	f.StringVar(&c.Vendor, "vendor", "", "Vendor")
	f.StringVar(&c.Number, "number", "", "Contract number")
	f.StringVar(&starts, "starts", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&ends, "ends", "", "End date (YYYY-MM-DD)")
	f.StringVar(&c.HardwareCover, "hardware-cover", "", "Hardware coverage")
	f.StringVar(&c.SoftwareCover, "software-cover", "", "Software coverage")
	f.StringVar(&c.SLA, "sla", "", "Service level description")
	return cmd
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the service desk counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := await(cmd.Context(), a.services.Dashboard.Open(cmd.Context()))
			if err != nil {
				return err
			}
			return printDashboard(a.out, board)
		},
	}
}

func parseDateFlag(name, value string) (domain.Date, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, apperrors.NewValidationError(
			fmt.Sprintf("Fecha inválida en --%s: %s", name, value),
			map[string]any{"field": name},
		)
	}
	return d, nil
}

func printHardware(out io.Writer, items []domain.Hardware) error {
	if len(items) == 0 {
		fmt.Fprintln(out, "No hay equipos")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINVENTARIO\tTIPO\tMARCA\tMODELO\tESTADO\tUBICACIÓN")
	for _, h := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.ID, h.InventoryNumber, dash(h.Type), dash(h.Brand), dash(h.Model), dash(h.State), dash(h.Location))
	}
	return w.Flush()
}

func printSoftware(out io.Writer, items []domain.Software) error {
	if len(items) == 0 {
		fmt.Fprintln(out, "No hay software")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tVERSIÓN\tFABRICANTE\tLICENCIAS\tVENCE")
	for _, s := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Name, dash(s.Version), dash(s.Vendor), s.LicenseCount, s.ExpiresOn)
	}
	return w.Flush()
}

func printContracts(out io.Writer, items []domain.Contract) error {
	if len(items) == 0 {
		fmt.Fprintln(out, "No hay contratos")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tPROVEEDOR\tNÚMERO\tINICIO\tFIN")
	for _, c := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Vendor, dash(c.Number), c.StartsOn, c.EndsOn)
	}
	return w.Flush()
}

func printDashboard(out io.Writer, d *service.Dashboard) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if s := d.Stats; s != nil {
		fmt.Fprintf(w, "Tickets abiertos:\t%d\n", s.OpenTickets)
		fmt.Fprintf(w, "Tickets cerrados:\t%d\n", s.ClosedThisMonth)
		fmt.Fprintf(w, "Prioridad alta:\t%d\n", s.HighPriorityTickets)
		fmt.Fprintf(w, "Hardware:\t%d\n", s.TotalHardware)
		fmt.Fprintf(w, "Software:\t%d\n", s.TotalSoftware)
		fmt.Fprintf(w, "Contratos vigentes:\t%d\n", s.ContractsInForce)
		fmt.Fprintf(w, "Contratos por vencer:\t%d\n", s.ContractsExpiring)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(d.Expiring) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nPróximos vencimientos:")
	return printContracts(out, d.Expiring)
}
