package consoleapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/eagl/console/pkg/consoleapi"
	"github.com/stretchr/testify/require"
)

func TestBillingTicketsLogs(t *testing.T) {
	ctx := context.Background()
	b, api := newBackend(t, map[string]string{
		"GET /api/admin/billing":  `{"invoices":[{"id":"i-1","tenantId":"t-1","amount":150.5,"status":"pending","dueDate":"2026-11-01","issuedAt":"2026-10-01"}]}`,
		"POST /api/admin/billing": `{"invoice":{"id":"i-2","tenantId":"t-1","amount":10,"status":"pending","dueDate":"2026-11-01","issuedAt":"2026-10-19"}}`,
		"GET /api/admin/tickets":  `{"tickets":[{"id":"k-1","tenantId":"t-1","title":"Falha","status":"open","priority":"high","createdAt":"x","updatedAt":"y"}]}`,
		"POST /api/admin/tickets": `{"ticket":{"id":"k-2","tenantId":"t-1","title":"Nova falha","status":"open","priority":"low"}}`,
		"GET /api/admin/logs":     `{"logs":[{"id":"l-1","level":"error","message":"boom","context":{"req":"1"},"createdAt":"z"}]}`,
	})
	c := consoleapi.New(api, consoleapi.StaticToken("tok"))

	invoices, err := c.ListInvoices(ctx, "t-1")
	require.NoError(t, err)
	require.InDelta(t, 150.5, invoices[0].Amount, 0.001)
	require.Equal(t, "tenantId=t-1", b.last().Query)

	_, err = c.CreateInvoice(ctx, consoleapi.CreateInvoiceRequest{TenantID: "t-1", Amount: 10, DueDate: "01/11/2026"})
	require.ErrorIs(t, err, consoleapi.ErrInvalidPayload)
	require.Contains(t, err.Error(), "dueDate must be a date formatted as 2006-01-02")

	inv, err := c.CreateInvoice(ctx, consoleapi.CreateInvoiceRequest{TenantID: "t-1", Amount: 10, DueDate: "2026-11-01"})
	require.NoError(t, err)
	require.Equal(t, "i-2", inv.ID)

	tickets, err := c.ListTickets(ctx, consoleapi.TicketFilter{Status: "open"})
	require.NoError(t, err)
	require.Equal(t, "high", tickets[0].Priority)
	require.Equal(t, "status=open", b.last().Query)

	_, err = c.CreateTicket(ctx, consoleapi.CreateTicketRequest{TenantID: "t-1", Title: "x"})
	require.ErrorIs(t, err, consoleapi.ErrInvalidPayload)

	ticket, err := c.CreateTicket(ctx, consoleapi.CreateTicketRequest{TenantID: "t-1", Title: "Nova falha", Priority: "low"})
	require.NoError(t, err)
	require.Equal(t, "k-2", ticket.ID)

	logs, err := c.ListLogs(ctx, consoleapi.LogFilter{Level: "error", From: "2026-10-01"})
	require.NoError(t, err)
	require.Equal(t, "boom", logs[0].Message)
	require.Equal(t, "from=2026-10-01&level=error", b.last().Query)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	b, api := newBackend(t, map[string]string{
		"GET /api/users":        `{"users":[{"id":"u-1","name":"Ana","email":"ana@x.com","role":"admin","tenantId":null}]}`,
		"POST /api/users":       `{"user":{"id":"u-2","name":"Bia","email":"bia@x.com","role":"user"}}`,
		"PUT /api/users/u-2":    `{"user":{"id":"u-2","name":"Bia","email":"bia@x.com","role":"admin"}}`,
		"DELETE /api/users/u-2": `{"user":{"id":"u-2"}}`,
	})
	c := consoleapi.New(api, consoleapi.StaticToken("tok"))

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", users[0].Email)

	_, err = c.CreateUser(ctx, consoleapi.CreateUserRequest{Name: "Bia", Email: "bia@x.com", Password: "short", Role: "user"})
	require.ErrorIs(t, err, consoleapi.ErrInvalidPayload)
	require.Contains(t, err.Error(), "password must be at least 8")

	u, err := c.CreateUser(ctx, consoleapi.CreateUserRequest{Name: "Bia", Email: "bia@x.com", Password: "longenough", Role: "user"})
	require.NoError(t, err)
	require.Equal(t, "u-2", u.ID)

	role := "admin"
	u, err = c.UpdateUser(ctx, "u-2", consoleapi.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	require.Equal(t, "admin", u.Role)
	require.Equal(t, http.MethodPut, b.last().Method)

	require.NoError(t, c.DeleteUser(ctx, "u-2"))
	require.Equal(t, http.MethodDelete, b.last().Method)
}

func TestSettingsAssetsWorkOrders(t *testing.T) {
	ctx := context.Background()
	b, api := newBackend(t, map[string]string{
		"GET /api/admin/settings":            `{"settings":{"supportEmail":"suporte@eagl.com.br","supportModeTimeoutMinutes":30}}`,
		"PATCH /api/admin/settings":          `{"settings":{"supportEmail":"novo@eagl.com.br"}}`,
		"GET /api/tenant/settings":           `{"settings":{"identity":{"brandName":"Acme"},"notifications":{"email":true},"integrations":{},"governance":{"sessionTimeoutMinutes":15}}}`,
		"GET /api/clients/c-1/assets":        `{"assets":[{"id":"a-1","clientId":"c-1","name":"Chiller","family":"hvac","status":"ok","health":"good"}]}`,
		"POST /api/clients/c-1/assets":       `{"asset":{"id":"a-2","clientId":"c-1","name":"Bomba","family":"pump","status":"ok","health":"good"}}`,
		"DELETE /api/clients/c-1/assets/a-2": `{"asset":{"id":"a-2"}}`,
		"GET /api/os/os-7":                   `{"os":{"id":"os-7","status":"aberta"}}`,
		"GET /api/templates/os/active":       `{"template":{"id":"tpl-1"}}`,
	})
	c := consoleapi.New(api, consoleapi.StaticToken("tok"))

	s, err := c.AdminSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, 30, s.SupportModeTimeoutMinutes)

	s, err = c.UpdateAdminSettings(ctx, map[string]any{"supportEmail": "novo@eagl.com.br"})
	require.NoError(t, err)
	require.Equal(t, "novo@eagl.com.br", s.SupportEmail)
	require.Equal(t, http.MethodPatch, b.last().Method)

	ts, err := c.TenantSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acme", ts.Identity.BrandName)
	require.Equal(t, 15, ts.Governance.SessionTimeoutMinutes)

	assets, err := c.ListAssets(ctx, "c-1")
	require.NoError(t, err)
	require.Equal(t, "Chiller", assets[0].Name)

	_, err = c.CreateAsset(ctx, "c-1", consoleapi.CreateAssetRequest{Name: "Bomba"})
	require.ErrorIs(t, err, consoleapi.ErrInvalidPayload)
	require.Contains(t, err.Error(), "family is required")

	a, err := c.CreateAsset(ctx, "c-1", consoleapi.CreateAssetRequest{Name: "Bomba", Family: "pump"})
	require.NoError(t, err)
	require.Equal(t, "a-2", a.ID)

	require.NoError(t, c.DeleteAsset(ctx, "c-1", "a-2"))

	os, err := c.WorkOrder(ctx, "os-7")
	require.NoError(t, err)
	require.Contains(t, os, "os")

	tpl, err := c.ActiveWorkOrderTemplate(ctx)
	require.NoError(t, err)
	require.Contains(t, tpl, "template")
}
