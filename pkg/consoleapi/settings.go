package consoleapi

import (
	"context"
	"net/http"
)

// AdminSettings are the platform-wide settings.
type AdminSettings struct {
	SupportEmail              string `json:"supportEmail,omitempty" yaml:"supportEmail,omitempty"`
	BillingProvider           string `json:"billingProvider,omitempty" yaml:"billingProvider,omitempty"`
	SupportModeTimeoutMinutes int    `json:"supportModeTimeoutMinutes,omitempty" yaml:"supportModeTimeoutMinutes,omitempty"`
	UpdatedAt                 string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// TenantSettings are the settings of the tenant the session belongs to.
type TenantSettings struct {
	Identity struct {
		BrandName    string `json:"brandName,omitempty" yaml:"brandName,omitempty"`
		PrimaryColor string `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty"`
		LogoURL      string `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
	} `json:"identity" yaml:"identity"`
	Notifications struct {
		Email bool `json:"email,omitempty" yaml:"email,omitempty"`
		Push  bool `json:"push,omitempty" yaml:"push,omitempty"`
	} `json:"notifications" yaml:"notifications"`
	Integrations struct {
		IoT     bool `json:"iot,omitempty" yaml:"iot,omitempty"`
		BMS     bool `json:"bms,omitempty" yaml:"bms,omitempty"`
		Exports bool `json:"exports,omitempty" yaml:"exports,omitempty"`
	} `json:"integrations" yaml:"integrations"`
	Governance struct {
		MFA                   bool `json:"mfa,omitempty" yaml:"mfa,omitempty"`
		SessionTimeoutMinutes int  `json:"sessionTimeoutMinutes,omitempty" yaml:"sessionTimeoutMinutes,omitempty"`
	} `json:"governance" yaml:"governance"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

type adminSettingsEnvelope struct {
	Settings AdminSettings `json:"settings"`
}

type tenantSettingsEnvelope struct {
	Settings TenantSettings `json:"settings"`
}

// AdminSettings calls GET /api/admin/settings.
func (c *Client) AdminSettings(ctx context.Context) (*AdminSettings, error) {
	var resp adminSettingsEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/settings", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

// UpdateAdminSettings calls PATCH /api/admin/settings. The patch is sent as
// given, so callers choose which keys to touch.
func (c *Client) UpdateAdminSettings(ctx context.Context, patch map[string]any) (*AdminSettings, error) {
	var resp adminSettingsEnvelope
	if err := c.do(ctx, http.MethodPatch, "/admin/settings", patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

// TenantSettings calls GET /api/tenant/settings.
func (c *Client) TenantSettings(ctx context.Context) (*TenantSettings, error) {
	var resp tenantSettingsEnvelope
	if err := c.do(ctx, http.MethodGet, "/tenant/settings", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

// UpdateTenantSettings calls PATCH /api/tenant/settings.
func (c *Client) UpdateTenantSettings(ctx context.Context, patch map[string]any) (*TenantSettings, error) {
	var resp tenantSettingsEnvelope
	if err := c.do(ctx, http.MethodPatch, "/tenant/settings", patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}
