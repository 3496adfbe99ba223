package consoleapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/eagl/console/pkg/consoleapi"
	"github.com/stretchr/testify/require"
)

func TestTenants(t *testing.T) {
	ctx := context.Background()
	b, api := newBackend(t, map[string]string{
		"GET /api/admin/tenants":                     `{"tenants":[{"id":"t-1","name":"Acme","status":"active","planId":null,"cnpj":null}]}`,
		"POST /api/admin/tenants":                    `{"tenant":{"id":"t-2","name":"Nova","status":"trial"}}`,
		"GET /api/admin/tenants/t-1":                 `{"tenant":{"id":"t-1","name":"Acme","status":"active"},"invoices":[{"id":"i-1","tenantId":"t-1","amount":10,"status":"paid","dueDate":"2026-01-10","issuedAt":"2026-01-01"}],"tickets":[]}`,
		"PATCH /api/admin/tenants/t-1":               `{"tenant":{"id":"t-1","name":"Acme SA","status":"active"}}`,
		"POST /api/admin/tenants/t-1/suspend":        `{"tenant":{"id":"t-1","name":"Acme","status":"suspended"}}`,
		"POST /api/admin/tenants/t-1/activate":       `{"tenant":{"id":"t-1","name":"Acme","status":"active"}}`,
		"POST /api/admin/tenants/t-1/impersonate":    `{"token":"tok-support","tenant":{"id":"t-1","name":"Acme"}}`,
		"POST /api/admin/tenants/t-1/reset-sessions": `{"ok":true}`,
	})
	c := consoleapi.New(api, consoleapi.StaticToken("tok"))

	t.Run("list with filters", func(t *testing.T) {
		tenants, err := c.ListTenants(ctx, consoleapi.TenantFilter{Status: "active", Search: "ac me"})
		require.NoError(t, err)
		require.Len(t, tenants, 1)
		require.Empty(t, tenants[0].PlanID)
		require.Equal(t, "search=ac+me&status=active", b.last().Query)
	})

	t.Run("list without filters", func(t *testing.T) {
		_, err := c.ListTenants(ctx, consoleapi.TenantFilter{})
		require.NoError(t, err)
		require.Empty(t, b.last().Query)
	})

	t.Run("create", func(t *testing.T) {
		tenant, err := c.CreateTenant(ctx, consoleapi.CreateTenantRequest{
			Name:       "Nova",
			CNPJ:       "12.345.678/0001-90",
			OwnerEmail: "dono@nova.com",
			Status:     "trial",
		})
		require.NoError(t, err)
		require.Equal(t, "t-2", tenant.ID)

		last := b.last()
		require.Equal(t, http.MethodPost, last.Method)
		require.Equal(t, "Nova", last.Body["name"])
		require.NotContains(t, last.Body, "planId")
	})

	t.Run("get with invoices", func(t *testing.T) {
		detail, err := c.GetTenant(ctx, "t-1")
		require.NoError(t, err)
		require.Equal(t, "Acme", detail.Tenant.Name)
		require.Len(t, detail.Invoices, 1)
		require.Empty(t, detail.Tickets)
	})

	t.Run("partial update", func(t *testing.T) {
		name := "Acme SA"
		tenant, err := c.UpdateTenant(ctx, "t-1", consoleapi.UpdateTenantRequest{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Acme SA", tenant.Name)
		require.Equal(t, map[string]any{"name": "Acme SA"}, b.last().Body)
	})

	t.Run("suspend and activate", func(t *testing.T) {
		tenant, err := c.SuspendTenant(ctx, "t-1")
		require.NoError(t, err)
		require.Equal(t, "suspended", tenant.Status)

		tenant, err = c.ActivateTenant(ctx, "t-1")
		require.NoError(t, err)
		require.Equal(t, "active", tenant.Status)
	})

	t.Run("impersonate", func(t *testing.T) {
		imp, err := c.ImpersonateTenant(ctx, "t-1")
		require.NoError(t, err)
		require.Equal(t, "tok-support", imp.Token)
		require.Equal(t, "t-1", imp.Tenant.ID)
	})

	t.Run("reset sessions", func(t *testing.T) {
		ok, err := c.ResetTenantSessions(ctx, "t-1")
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestCreateTenantValidation(t *testing.T) {
	b, api := newBackend(t, nil)
	c := consoleapi.New(api, consoleapi.StaticToken("tok"))

	tests := []struct {
		name string
		req  consoleapi.CreateTenantRequest
		msg  string
	}{
		{"missing name", consoleapi.CreateTenantRequest{}, "name is required"},
		{"short cnpj", consoleapi.CreateTenantRequest{Name: "Acme", CNPJ: "123"}, "cnpj must have 14 digits"},
		{"bad email", consoleapi.CreateTenantRequest{Name: "Acme", OwnerEmail: "nope"}, "ownerEmail must be a valid email"},
		{"bad status", consoleapi.CreateTenantRequest{Name: "Acme", Status: "gone"}, "status must be one of: active suspended trial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateTenant(context.Background(), tt.req)
			require.ErrorIs(t, err, consoleapi.ErrInvalidPayload)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
	require.Zero(t, b.count())
}
