package consoleapi

import (
	"context"
	"net/http"
)

// Asset is a piece of equipment installed at a client site.
type Asset struct {
	ID           string `json:"id" yaml:"id"`
	ClientID     string `json:"clientId" yaml:"clientId"`
	TenantID     string `json:"tenantId,omitempty" yaml:"tenantId,omitempty"`
	Name         string `json:"name" yaml:"name"`
	Family       string `json:"family" yaml:"family"`
	Tag          string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Status       string `json:"status" yaml:"status"`
	Health       string `json:"health" yaml:"health"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty" yaml:"serialNumber,omitempty"`
	PowerKW      string `json:"powerKw,omitempty" yaml:"powerKw,omitempty"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty"`
	Notes        string `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// CreateAssetRequest is the payload of CreateAsset.
type CreateAssetRequest struct {
	Name         string `json:"name" validate:"required"`
	Family       string `json:"family" validate:"required"`
	Tag          string `json:"tag,omitempty"`
	Status       string `json:"status,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	PowerKW      string `json:"powerKw,omitempty"`
	Location     string `json:"location,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type assetEnvelope struct {
	Asset Asset `json:"asset"`
}

func assetsPath(clientID string) string { return "/clients/" + escape(clientID) + "/assets" }

// ListAssets calls GET /api/clients/{clientId}/assets.
func (c *Client) ListAssets(ctx context.Context, clientID string) ([]Asset, error) {
	var resp struct {
		Assets []Asset `json:"assets"`
	}
	if err := c.do(ctx, http.MethodGet, assetsPath(clientID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assets, nil
}

// GetAsset calls GET /api/clients/{clientId}/assets/{assetId}.
func (c *Client) GetAsset(ctx context.Context, clientID, assetID string) (*Asset, error) {
	var resp assetEnvelope
	if err := c.do(ctx, http.MethodGet, assetsPath(clientID)+"/"+escape(assetID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Asset, nil
}

// CreateAsset calls POST /api/clients/{clientId}/assets.
func (c *Client) CreateAsset(ctx context.Context, clientID string, req CreateAssetRequest) (*Asset, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp assetEnvelope
	if err := c.do(ctx, http.MethodPost, assetsPath(clientID), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Asset, nil
}

// UpdateAsset calls PATCH /api/clients/{clientId}/assets/{assetId}.
func (c *Client) UpdateAsset(ctx context.Context, clientID, assetID string, patch map[string]any) (*Asset, error) {
	var resp assetEnvelope
	if err := c.do(ctx, http.MethodPatch, assetsPath(clientID)+"/"+escape(assetID), patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Asset, nil
}

// DeleteAsset calls DELETE /api/clients/{clientId}/assets/{assetId}.
func (c *Client) DeleteAsset(ctx context.Context, clientID, assetID string) error {
	return c.do(ctx, http.MethodDelete, assetsPath(clientID)+"/"+escape(assetID), nil, nil)
}
