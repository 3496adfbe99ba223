package consoleapi

import (
	"context"
	"net/http"
)

// Invoice is a billing entry of a tenant.
type Invoice struct {
	ID          string  `json:"id" yaml:"id"`
	TenantID    string  `json:"tenantId" yaml:"tenantId"`
	Amount      float64 `json:"amount" yaml:"amount"`
	Status      string  `json:"status" yaml:"status"`
	DueDate     string  `json:"dueDate" yaml:"dueDate"`
	IssuedAt    string  `json:"issuedAt" yaml:"issuedAt"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// CreateInvoiceRequest is the payload of CreateInvoice.
type CreateInvoiceRequest struct {
	TenantID    string  `json:"tenantId" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue canceled"`
	DueDate     string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description,omitempty"`
}

// UpdateInvoiceRequest is a partial update; nil fields are left unchanged.
type UpdateInvoiceRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Status      *string  `json:"status,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type invoiceEnvelope struct {
	Invoice Invoice `json:"invoice"`
}

// ListInvoices calls GET /api/admin/billing, optionally for one tenant.
func (c *Client) ListInvoices(ctx context.Context, tenantID string) ([]Invoice, error) {
	var resp struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/admin/billing", "tenantId", tenantID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

// CreateInvoice calls POST /api/admin/billing.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp invoiceEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/billing", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Invoice, nil
}

// UpdateInvoice calls PATCH /api/admin/billing/{id}.
func (c *Client) UpdateInvoice(ctx context.Context, id string, req UpdateInvoiceRequest) (*Invoice, error) {
	var resp invoiceEnvelope
	if err := c.do(ctx, http.MethodPatch, "/admin/billing/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Invoice, nil
}
