package session_test

import (
	"testing"

	"github.com/eagl/console/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role session.Role
		want session.Tier
	}{
		{"super_admin", session.TierSuperAdmin},
		{"SUPER_ADMIN", session.TierSuperAdmin},
		{"superadmin", session.TierSuperAdmin},
		{"ADM", session.TierSuperAdmin},
		{"adm", session.TierSuperAdmin},
		{"admin", session.TierAdmin},
		{" Admin ", session.TierAdmin},
		{"user", session.TierUser},
		{"tecnico", session.TierUser},
		{"", session.TierUser},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			require.Equal(t, tt.want, session.NormalizeRole(tt.role))
		})
	}
}

func TestTierOrdering(t *testing.T) {
	t.Parallel()

	require.True(t, session.TierSuperAdmin.AtLeast(session.TierAdmin))
	require.True(t, session.TierAdmin.AtLeast(session.TierAdmin))
	require.False(t, session.TierUser.AtLeast(session.TierAdmin))
	require.False(t, session.TierNone.AtLeast(session.TierUser))
}

func TestSnapshotAuthenticationInvariant(t *testing.T) {
	t.Parallel()

	u := session.User{ID: "u", Role: session.RoleAdmin}

	require.False(t, session.Snapshot{}.IsAuthenticated())
	require.False(t, session.Snapshot{User: &u}.IsAuthenticated())
	require.False(t, session.Snapshot{Token: "t"}.IsAuthenticated())
	require.True(t, session.Snapshot{User: &u, Token: "t"}.IsAuthenticated())

	require.Equal(t, session.TierNone, session.Snapshot{User: &u}.Tier())
	require.Equal(t, session.TierAdmin, session.Snapshot{User: &u, Token: "t"}.Tier())
}

func TestRecordCodec(t *testing.T) {
	t.Parallel()

	u := session.User{ID: "u-1", Name: "N", Email: "n@x.com", Role: session.RoleSuperAdmin}
	rec := session.Record{Token: "tok", User: &u, SupportMode: true, ImpersonatedTenantID: "t-3"}

	data, err := rec.Marshal()
	require.NoError(t, err)
	require.JSONEq(t, `{"token":"tok","user":{"id":"u-1","name":"N","email":"n@x.com","role":"super_admin"},"supportMode":true,"impersonatedTenantId":"t-3"}`, string(data))

	back, err := session.UnmarshalRecord(data)
	require.NoError(t, err)
	require.Equal(t, rec, back)

	// Records written with an explicit null tenant still decode
	back, err = session.UnmarshalRecord([]byte(`{"token":"tok","user":{"id":"u-1","role":"user","tenantId":null},"impersonatedTenantId":null}`))
	require.NoError(t, err)
	require.Empty(t, back.ImpersonatedTenantID)
	require.Empty(t, back.User.TenantID)

	_, err = session.UnmarshalRecord([]byte(`{"token":""}`))
	require.ErrorIs(t, err, session.ErrInvalidRecord)

	_, err = session.UnmarshalRecord([]byte(`not json`))
	require.ErrorIs(t, err, session.ErrInvalidRecord)

	_, err = session.Record{Token: "tok"}.Marshal()
	require.ErrorIs(t, err, session.ErrInvalidRecord)
}
