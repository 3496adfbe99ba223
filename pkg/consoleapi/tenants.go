package consoleapi

import (
	"context"
	"net/http"
)

// Tenant is a customer organization.
type Tenant struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	CNPJ        string         `json:"cnpj,omitempty" yaml:"cnpj,omitempty"`
	OwnerEmail  string         `json:"ownerEmail,omitempty" yaml:"ownerEmail,omitempty"`
	Status      string         `json:"status" yaml:"status"`
	PlanID      string         `json:"planId,omitempty" yaml:"planId,omitempty"`
	PlanName    string         `json:"planName,omitempty" yaml:"planName,omitempty"`
	Limits      map[string]any `json:"limits,omitempty" yaml:"limits,omitempty"`
	UsersCount  int            `json:"usersCount,omitempty" yaml:"usersCount,omitempty"`
	AssetsCount int            `json:"assetsCount,omitempty" yaml:"assetsCount,omitempty"`
	OSPerMonth  int            `json:"osPerMonth,omitempty" yaml:"osPerMonth,omitempty"`
	StorageGB   float64        `json:"storageGb,omitempty" yaml:"storageGb,omitempty"`
	Health      string         `json:"health,omitempty" yaml:"health,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   string         `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	LastLoginAt string         `json:"lastLoginAt,omitempty" yaml:"lastLoginAt,omitempty"`
}

// TenantFilter narrows ListTenants. Empty fields are ignored.
type TenantFilter struct {
	Status string
	PlanID string
	Search string
}

// CreateTenantRequest is the payload of CreateTenant.
type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	CNPJ       string `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	OwnerEmail string `json:"ownerEmail,omitempty" validate:"omitempty,email"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=active suspended trial"`
	PlanID     string `json:"planId,omitempty"`
}

// UpdateTenantRequest is a partial update; nil fields are left unchanged.
type UpdateTenantRequest struct {
	Name       *string        `json:"name,omitempty"`
	CNPJ       *string        `json:"cnpj,omitempty"`
	OwnerEmail *string        `json:"ownerEmail,omitempty"`
	Status     *string        `json:"status,omitempty"`
	PlanID     *string        `json:"planId,omitempty"`
	Limits     map[string]any `json:"limits,omitempty"`
}

// TenantDetail is a tenant together with its invoices and tickets.
type TenantDetail struct {
	Tenant   Tenant    `json:"tenant" yaml:"tenant"`
	Invoices []Invoice `json:"invoices" yaml:"invoices"`
	Tickets  []Ticket  `json:"tickets" yaml:"tickets"`
}

// Impersonation is the support token issued for a tenant.
type Impersonation struct {
	Token  string `json:"token"`
	Tenant struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"tenant"`
}

type tenantEnvelope struct {
	Tenant Tenant `json:"tenant"`
}

// ListTenants calls GET /api/admin/tenants.
func (c *Client) ListTenants(ctx context.Context, f TenantFilter) ([]Tenant, error) {
	var resp struct {
		Tenants []Tenant `json:"tenants"`
	}
	path := withQuery("/admin/tenants", "status", f.Status, "planId", f.PlanID, "search", f.Search)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tenants, nil
}

// CreateTenant calls POST /api/admin/tenants.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp tenantEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/tenants", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Tenant, nil
}

// GetTenant calls GET /api/admin/tenants/{id}.
func (c *Client) GetTenant(ctx context.Context, id string) (*TenantDetail, error) {
	var resp TenantDetail
	if err := c.do(ctx, http.MethodGet, "/admin/tenants/"+escape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTenant calls PATCH /api/admin/tenants/{id}.
func (c *Client) UpdateTenant(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error) {
	var resp tenantEnvelope
	if err := c.do(ctx, http.MethodPatch, "/admin/tenants/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Tenant, nil
}

// SuspendTenant calls POST /api/admin/tenants/{id}/suspend.
func (c *Client) SuspendTenant(ctx context.Context, id string) (*Tenant, error) {
	return c.tenantAction(ctx, id, "suspend")
}

// ActivateTenant calls POST /api/admin/tenants/{id}/activate.
func (c *Client) ActivateTenant(ctx context.Context, id string) (*Tenant, error) {
	return c.tenantAction(ctx, id, "activate")
}

func (c *Client) tenantAction(ctx context.Context, id, action string) (*Tenant, error) {
	var resp tenantEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/tenants/"+escape(id)+"/"+action, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Tenant, nil
}

// ImpersonateTenant calls POST /api/admin/tenants/{id}/impersonate. The
// returned token is meant for session.Manager.ApplySupportToken.
func (c *Client) ImpersonateTenant(ctx context.Context, id string) (*Impersonation, error) {
	var resp Impersonation
	if err := c.do(ctx, http.MethodPost, "/admin/tenants/"+escape(id)+"/impersonate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetTenantSessions calls POST /api/admin/tenants/{id}/reset-sessions.
func (c *Client) ResetTenantSessions(ctx context.Context, id string) (bool, error) {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/tenants/"+escape(id)+"/reset-sessions", nil, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}
