package credstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sojus-client/internal/domain"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

func sampleCredentials() Credentials {
	return Credentials{
		Token: "eyJhbGciOiJIUzI1NiJ9.token",
		User: &domain.User{
			ID:       1,
			Username: "admin",
			FullName: "Administrador del Sistema",
			Role:     domain.RoleAdmin,
		},
	}
}

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty load", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		creds, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, creds.Empty())
	})

	t.Run("round trip", func(t *testing.T) {
		want := sampleCredentials()
		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want.Token, got.Token)
		assert.Equal(t, *want.User, *got.User)
	})

	t.Run("overwrite", func(t *testing.T) {
		next := sampleCredentials()
		next.Token = "second"
		next.User.Username = "operador"
		next.User.Role = domain.RoleOperator
		require.NoError(t, store.Save(ctx, next))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Token)
		assert.Equal(t, domain.RoleOperator, got.User.Role)
	})

	t.Run("partial save rejected", func(t *testing.T) {
		err := store.Save(ctx, Credentials{Token: "only-token"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCredentialStore(err))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Token, "previous record must survive a rejected save")
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, got.Empty())
		require.NoError(t, store.Clear(ctx), "clearing twice is fine")
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreHalfRecordLoadsEmpty(t *testing.T) {
	store := NewMemoryStore()
	store.Put(Credentials{Token: "orphan"})

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestMemoryStoreFailure(t *testing.T) {
	store := NewMemoryStore()
	store.SetFailure(errors.New("disk full"))

	err := store.Save(context.Background(), sampleCredentials())
	assert.True(t, apperrors.IsCredentialStore(err))
	_, err = store.Load(context.Background())
	assert.True(t, apperrors.IsCredentialStore(err))

	store.SetFailure(nil)
	assert.NoError(t, store.Save(context.Background(), sampleCredentials()))
}

func TestLoadReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	creds := sampleCredentials()
	require.NoError(t, store.Save(context.Background(), creds))

	creds.User.Username = "mutated"
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", got.User.Username)
}
