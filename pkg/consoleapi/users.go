package consoleapi

import (
	"context"
	"net/http"
)

// AccountUser is a user account as listed by the users endpoints.
type AccountUser struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Role      string `json:"role" yaml:"role"`
	TenantID  string `json:"tenantId,omitempty" yaml:"tenantId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// CreateUserRequest is the payload of CreateUser.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
	TenantID string `json:"tenantId,omitempty"`
}

// UpdateUserRequest replaces the given fields; nil fields are omitted.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	TenantID *string `json:"tenantId,omitempty"`
	Password *string `json:"password,omitempty"`
}

type userEnvelope struct {
	User AccountUser `json:"user"`
}

// ListUsers calls GET /api/users.
func (c *Client) ListUsers(ctx context.Context) ([]AccountUser, error) {
	var resp struct {
		Users []AccountUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// CreateUser calls POST /api/users.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*AccountUser, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp userEnvelope
	if err := c.do(ctx, http.MethodPost, "/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateUser calls PUT /api/users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*AccountUser, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodPut, "/users/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// DeleteUser calls DELETE /api/users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+escape(id), nil, nil)
}
