package consoleapi

import (
	"context"
	"net/http"
)

// WorkOrder returns the raw detail document of a work order (ordem de
// serviço). The server owns its schema.
func (c *Client) WorkOrder(ctx context.Context, id string) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, "/os/"+escape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ActiveWorkOrderTemplate returns the print template currently in use.
func (c *Client) ActiveWorkOrderTemplate(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, "/templates/os/active", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
