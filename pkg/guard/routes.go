package guard

// ConsoleRoutes is the route table of the EAGL console.
func ConsoleRoutes() []Route {
	return []Route{
		{Pattern: "/", Alias: LoginPath},
		{Pattern: LoginPath, Page: "Login", Kind: Public, BounceAuthenticated: true},
		{Pattern: "/painel", Alias: LandingPath},
		{Pattern: "/app", Alias: LandingPath},

		// Tenant application
		{Pattern: LandingPath, Page: "Painel", Kind: Authenticated},
		{Pattern: "/app/clientes", Page: "Clientes", Kind: Authenticated},
		{Pattern: "/app/clientes/{id}", Page: "ClienteDetalhe", Kind: Authenticated},
		{Pattern: "/app/ordens-servico", Page: "OrdensServico", Kind: Authenticated},
		{Pattern: "/app/ordens-servico/{id}/imprimir", Page: "OSPrint", Kind: Authenticated},
		{Pattern: "/app/preventivas", Page: "Preventivas", Kind: Authenticated},
		{Pattern: "/app/diagnostico", Page: "Diagnostico", Kind: Authenticated},
		{Pattern: "/app/solucionador", Page: "Solucionador", Kind: Authenticated},
		{Pattern: "/app/relatorios", Page: "Relatorios", Kind: Authenticated},
		{Pattern: "/app/configuracoes", Page: "Configuracoes", Kind: Authenticated},
		{Pattern: "/app/usuarios", Page: "Usuarios", Kind: Admin},
		{Pattern: "/app/perfis", Page: "Perfis", Kind: Admin},

		// Platform back-office
		{Pattern: "/admin", Alias: "/admin/dashboard"},
		{Pattern: "/admin/dashboard", Page: "AdminDashboard", Kind: SuperAdmin},
		{Pattern: "/admin/tenants", Page: "TenantsList", Kind: SuperAdmin},
		{Pattern: "/admin/tenants/new", Page: "TenantCreate", Kind: SuperAdmin},
		{Pattern: "/admin/tenants/{id}", Page: "TenantDetail", Kind: SuperAdmin},
		{Pattern: "/admin/plans", Page: "PlansList", Kind: SuperAdmin},
		{Pattern: "/admin/billing", Page: "BillingOverview", Kind: SuperAdmin},
		{Pattern: "/admin/support", Page: "SupportTickets", Kind: SuperAdmin},
		{Pattern: "/admin/logs", Page: "ObservabilityLogs", Kind: SuperAdmin},
		{Pattern: "/admin/settings", Page: "AdminSettings", Kind: SuperAdmin},
	}
}
