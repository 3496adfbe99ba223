package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/eagl/console/pkg/consoleapi"
	"github.com/spf13/cobra"
)

func (r *runner) tenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage tenants (super admin)",
	}

	var filter consoleapi.TenantFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/tenants")
			if err != nil {
				return err
			}
			tenants, err := a.Console.ListTenants(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), tenants, func(w io.Writer) error {
				rows := make([][]string, 0, len(tenants))
				for _, t := range tenants {
					rows = append(rows, []string{t.ID, t.Name, t.Status, t.PlanName, strconv.Itoa(t.UsersCount), t.Health})
				}
				return writeTable(w, []string{"ID", "NAME", "STATUS", "PLAN", "USERS", "HEALTH"}, rows)
			})
		},
	}
	list.Flags().StringVar(&filter.Status, "status", "", "only tenants with this status")
	list.Flags().StringVar(&filter.PlanID, "plan", "", "only tenants on this plan")
	list.Flags().StringVar(&filter.Search, "search", "", "match name, CNPJ or owner e-mail")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a tenant with its invoices and tickets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := r.gateID(cmd.Context(), "/admin/tenants", args[0])
			if err != nil {
				return err
			}
			d, err := a.Console.GetTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), d, func(w io.Writer) error {
				if err := writeTenant(w, d.Tenant); err != nil {
					return err
				}
				fmt.Fprintln(w)
				if err := writeInvoices(w, d.Invoices); err != nil {
					return err
				}
				fmt.Fprintln(w)
				return writeTickets(w, d.Tickets)
			})
		},
	}

	var req consoleapi.CreateTenantRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/tenants/new")
			if err != nil {
				return err
			}
			t, err := a.Console.CreateTenant(cmd.Context(), req)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), t, func(w io.Writer) error {
				return writeTenant(w, *t)
			})
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "tenant name")
	create.Flags().StringVar(&req.CNPJ, "cnpj", "", "tenant CNPJ")
	create.Flags().StringVar(&req.OwnerEmail, "owner-email", "", "owner e-mail")
	create.Flags().StringVar(&req.Status, "status", "", "active, suspended or trial")
	create.Flags().StringVar(&req.PlanID, "plan", "", "plan ID")

	cmd.AddCommand(
		list,
		get,
		create,
		r.tenantActionCmd("suspend", "Suspend a tenant", (*consoleapi.Client).SuspendTenant),
		r.tenantActionCmd("activate", "Reactivate a tenant", (*consoleapi.Client).ActivateTenant),
		&cobra.Command{
			Use:   "reset-sessions <id>",
			Short: "Sign out every user of a tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, _, err := r.gateID(cmd.Context(), "/admin/tenants", args[0])
				if err != nil {
					return err
				}
				ok, err := a.Console.ResetTenantSessions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("api did not confirm the session reset for %s", args[0])
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "sessions of tenant %s were reset\n", args[0])
				return err
			},
		},
	)
	return cmd
}


func (r *runner) tenantActionCmd(use, short string, action func(*consoleapi.Client, context.Context, string) (*consoleapi.Tenant, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := r.gateID(cmd.Context(), "/admin/tenants", args[0])
			if err != nil {
				return err
			}
			t, err := action(a.Console, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), t, func(w io.Writer) error {
				return writeTenant(w, *t)
			})
		},
	}
}

func writeTenant(w io.Writer, t consoleapi.Tenant) error {
	return writeFields(w, []field{
		{"ID", t.ID},
		{"Name", t.Name},
		{"CNPJ", t.CNPJ},
		{"Owner", t.OwnerEmail},
		{"Status", t.Status},
		{"Plan", t.PlanName},
		{"Users", strconv.Itoa(t.UsersCount)},
		{"Assets", strconv.Itoa(t.AssetsCount)},
		{"Health", t.Health},
		{"Last login", t.LastLoginAt},
	})
}

func writeInvoices(w io.Writer, invoices []consoleapi.Invoice) error {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{inv.ID, inv.TenantID, money(inv.Amount), inv.Status, inv.DueDate})
	}
	return writeTable(w, []string{"INVOICE", "TENANT", "AMOUNT", "STATUS", "DUE"}, rows)
}

func writeTickets(w io.Writer, tickets []consoleapi.Ticket) error {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{t.ID, t.TenantID, t.Title, t.Status, t.Priority})
	}
	return writeTable(w, []string{"TICKET", "TENANT", "TITLE", "STATUS", "PRIORITY"}, rows)
}

func money(v float64) string { return "R$ " + strconv.FormatFloat(v, 'f', 2, 64) }

func (r *runner) plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Subscription plans (super admin)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/plans")
			if err != nil {
				return err
			}
			plans, err := a.Console.ListPlans(cmd.Context())
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), plans, func(w io.Writer) error {
				rows := make([][]string, 0, len(plans))
				for _, p := range plans {
					rows = append(rows, []string{p.ID, p.Name, money(p.Price), strconv.FormatBool(p.IsActive)})
				}
				return writeTable(w, []string{"ID", "NAME", "PRICE", "ACTIVE"}, rows)
			})
		},
	})
	return cmd
}

func (r *runner) billingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Invoices (super admin)",
	}

	var tenantID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/billing")
			if err != nil {
				return err
			}
			invoices, err := a.Console.ListInvoices(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), invoices, func(w io.Writer) error {
				return writeInvoices(w, invoices)
			})
		},
	}
	list.Flags().StringVar(&tenantID, "tenant", "", "only invoices of this tenant")

	cmd.AddCommand(list)
	return cmd
}

func (r *runner) ticketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Support tickets (super admin)",
	}

	var filter consoleapi.TicketFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/support")
			if err != nil {
				return err
			}
			tickets, err := a.Console.ListTickets(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), tickets, func(w io.Writer) error {
				return writeTickets(w, tickets)
			})
		},
	}
	list.Flags().StringVar(&filter.TenantID, "tenant", "", "only tickets of this tenant")
	list.Flags().StringVar(&filter.Status, "status", "", "only tickets with this status")

	var req consoleapi.CreateTicketRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a ticket for a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/support")
			if err != nil {
				return err
			}
			t, err := a.Console.CreateTicket(cmd.Context(), req)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), t, func(w io.Writer) error {
				return writeTickets(w, []consoleapi.Ticket{*t})
			})
		},
	}
	create.Flags().StringVar(&req.TenantID, "tenant", "", "tenant ID")
	create.Flags().StringVar(&req.Title, "title", "", "ticket title")
	create.Flags().StringVar(&req.Priority, "priority", "", "low, medium, high or urgent")

	cmd.AddCommand(list, create)
	return cmd
}

func (r *runner) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User accounts (admin)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/app/usuarios")
			if err != nil {
				return err
			}
			users, err := a.Console.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), users, func(w io.Writer) error {
				rows := make([][]string, 0, len(users))
				for _, u := range users {
					rows = append(rows, []string{u.ID, u.Name, u.Email, u.Role, u.TenantID})
				}
				return writeTable(w, []string{"ID", "NAME", "EMAIL", "ROLE", "TENANT"}, rows)
			})
		},
	})
	return cmd
}

func (r *runner) logsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Platform event log (super admin)",
	}

	var filter consoleapi.LogFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List log events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := r.gate(cmd.Context(), "/admin/logs")
			if err != nil {
				return err
			}
			events, err := a.Console.ListLogs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), events, func(w io.Writer) error {
				rows := make([][]string, 0, len(events))
				for _, e := range events {
					rows = append(rows, []string{e.CreatedAt, e.Level, e.TenantID, e.Message})
				}
				return writeTable(w, []string{"TIME", "LEVEL", "TENANT", "MESSAGE"}, rows)
			})
		},
	}
	list.Flags().StringVar(&filter.TenantID, "tenant", "", "only events of this tenant")
	list.Flags().StringVar(&filter.Level, "level", "", "only events at this level")
	list.Flags().StringVar(&filter.From, "from", "", "start of the time window")
	list.Flags().StringVar(&filter.To, "to", "", "end of the time window")

	cmd.AddCommand(list)
	return cmd
}

func (r *runner) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Platform or tenant settings",
	}

	var tenant bool
	get := &cobra.Command{
		Use:   "get",
		Short: "Show settings",
		Long: `get shows the platform settings (super admin). With --tenant it shows the
settings of the tenant the session belongs to instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if tenant {
				a, _, err := r.gate(ctx, "/app/configuracoes")
				if err != nil {
					return err
				}
				s, err := a.Console.TenantSettings(ctx)
				if err != nil {
					return err
				}
				return r.render(cmd.OutOrStdout(), s, nil)
			}

			a, _, err := r.gate(ctx, "/admin/settings")
			if err != nil {
				return err
			}
			s, err := a.Console.AdminSettings(ctx)
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), s, func(w io.Writer) error {
				return writeFields(w, []field{
					{"Support e-mail", s.SupportEmail},
					{"Billing provider", s.BillingProvider},
					{"Support timeout", strconv.Itoa(s.SupportModeTimeoutMinutes) + "m"},
					{"Updated", s.UpdatedAt},
				})
			})
		},
	}
	get.Flags().BoolVar(&tenant, "tenant", false, "show the settings of your tenant")

	cmd.AddCommand(get)
	return cmd
}

func (r *runner) assetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Equipment installed at client sites",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <client-id>",
		Short: "List the assets of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := r.gateID(cmd.Context(), "/app/clientes", args[0])
			if err != nil {
				return err
			}
			assets, err := a.Console.ListAssets(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), assets, func(w io.Writer) error {
				rows := make([][]string, 0, len(assets))
				for _, as := range assets {
					rows = append(rows, []string{as.ID, as.Name, as.Family, as.Status, as.Health, as.Location})
				}
				return writeTable(w, []string{"ID", "NAME", "FAMILY", "STATUS", "HEALTH", "LOCATION"}, rows)
			})
		},
	})
	return cmd
}

func (r *runner) osCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "os",
		Short: "Work orders",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a work order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, _, err := r.gate(cmd.Context(), "/app/ordens-servico")
				if err != nil {
					return err
				}
				doc, err := a.Console.WorkOrder(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return r.render(cmd.OutOrStdout(), doc, nil)
			},
		},
		&cobra.Command{
			Use:   "template",
			Short: "Show the active work order print template",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, _, err := r.gate(cmd.Context(), "/app/ordens-servico")
				if err != nil {
					return err
				}
				doc, err := a.Console.ActiveWorkOrderTemplate(cmd.Context())
				if err != nil {
					return err
				}
				return r.render(cmd.OutOrStdout(), doc, nil)
			},
		},
	)
	return cmd
}
