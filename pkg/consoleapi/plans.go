package consoleapi

import (
	"context"
	"net/http"
)

// Plan is a subscription plan.
type Plan struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Price     float64        `json:"price" yaml:"price"`
	Limits    map[string]any `json:"limits,omitempty" yaml:"limits,omitempty"`
	Modules   []string       `json:"modules,omitempty" yaml:"modules,omitempty"`
	IsActive  bool           `json:"isActive" yaml:"isActive"`
	CreatedAt string         `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string         `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// CreatePlanRequest is the payload of CreatePlan.
type CreatePlanRequest struct {
	Name     string         `json:"name" validate:"required"`
	Price    float64        `json:"price" validate:"gte=0"`
	Limits   map[string]any `json:"limits,omitempty"`
	Modules  []string       `json:"modules,omitempty"`
	IsActive *bool          `json:"isActive,omitempty"`
}

// UpdatePlanRequest is a partial update; nil fields are left unchanged.
type UpdatePlanRequest struct {
	Name     *string        `json:"name,omitempty"`
	Price    *float64       `json:"price,omitempty"`
	Limits   map[string]any `json:"limits,omitempty"`
	Modules  []string       `json:"modules,omitempty"`
	IsActive *bool          `json:"isActive,omitempty"`
}

type planEnvelope struct {
	Plan Plan `json:"plan"`
}

// ListPlans calls GET /api/admin/plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var resp struct {
		Plans []Plan `json:"plans"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// CreatePlan calls POST /api/admin/plans.
func (c *Client) CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp planEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/plans", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Plan, nil
}

// UpdatePlan calls PATCH /api/admin/plans/{id}.
func (c *Client) UpdatePlan(ctx context.Context, id string, req UpdatePlanRequest) (*Plan, error) {
	var resp planEnvelope
	if err := c.do(ctx, http.MethodPatch, "/admin/plans/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Plan, nil
}
