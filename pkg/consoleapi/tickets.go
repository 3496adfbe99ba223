package consoleapi

import (
	"context"
	"net/http"
)

// Ticket is a support ticket opened for a tenant.
type Ticket struct {
	ID        string `json:"id" yaml:"id"`
	TenantID  string `json:"tenantId" yaml:"tenantId"`
	Title     string `json:"title" yaml:"title"`
	Status    string `json:"status" yaml:"status"`
	Priority  string `json:"priority" yaml:"priority"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

// TicketFilter narrows ListTickets. Empty fields are ignored.
type TicketFilter struct {
	TenantID string
	Status   string
}

// CreateTicketRequest is the payload of CreateTicket.
type CreateTicketRequest struct {
	TenantID string `json:"tenantId" validate:"required"`
	Title    string `json:"title" validate:"required,min=3"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

// UpdateTicketRequest is a partial update; nil fields are left unchanged.
type UpdateTicketRequest struct {
	Title    *string `json:"title,omitempty"`
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

type ticketEnvelope struct {
	Ticket Ticket `json:"ticket"`
}

// ListTickets calls GET /api/admin/tickets.
func (c *Client) ListTickets(ctx context.Context, f TicketFilter) ([]Ticket, error) {
	var resp struct {
		Tickets []Ticket `json:"tickets"`
	}
	path := withQuery("/admin/tickets", "tenantId", f.TenantID, "status", f.Status)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

// CreateTicket calls POST /api/admin/tickets.
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp ticketEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/tickets", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Ticket, nil
}

// UpdateTicket calls PATCH /api/admin/tickets/{id}.
func (c *Client) UpdateTicket(ctx context.Context, id string, req UpdateTicketRequest) (*Ticket, error) {
	var resp ticketEnvelope
	if err := c.do(ctx, http.MethodPatch, "/admin/tickets/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Ticket, nil
}
