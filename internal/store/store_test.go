package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eagl/console/internal/store"
	"github.com/eagl/console/pkg/cryptox"
	"github.com/eagl/console/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sealer, err := cryptox.NewSealer([]byte("k"))
	require.NoError(t, err)

	rec := session.Record{
		Token: "tok",
		User:  &session.User{ID: "u", Email: "u@x.com", Role: session.RoleUser},
	}

	for _, opts := range []store.Options{
		{Driver: ""},
		{Driver: store.DriverMemory},
		{Driver: store.DriverFile, Path: filepath.Join(dir, "session.json")},
		{Driver: "FILE", Path: filepath.Join(dir, "sealed.bin"), Sealer: sealer},
		{Driver: store.DriverSQLite, Path: filepath.Join(dir, "session.db")},
		{Driver: store.DriverSQLite, Path: filepath.Join(dir, "sealed.db"), Sealer: sealer},
	} {
		t.Run(opts.Driver+"/"+filepath.Base(opts.Path), func(t *testing.T) {
			s, err := store.Open(ctx, opts)
			require.NoError(t, err)
			defer s.Close()

			_, err = s.Load(ctx)
			require.ErrorIs(t, err, session.ErrNoRecord)

			require.NoError(t, s.Save(ctx, rec))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, rec, got)

			require.NoError(t, s.Clear(ctx))
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := store.Open(context.Background(), store.Options{Driver: "redis"})
	require.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestOpenNeedsPath(t *testing.T) {
	_, err := store.Open(context.Background(), store.Options{Driver: store.DriverSQLite})
	require.Error(t, err)

	_, err = store.Open(context.Background(), store.Options{Driver: store.DriverFile})
	require.Error(t, err)
}
