package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck
	return s
}

func testCredentials(id, account string) domain.Credentials {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Credentials{
		ID:                id,
		AccountIdentifier: account,
		OAuth: &domain.OAuthCredentials{
			AccessToken:  "access-" + id,
			RefreshToken: "refresh-" + id,
			TokenType:    "Bearer",
			Expiry:       now.Add(time.Hour),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCredentialsStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t).CredentialsStore()
	ctx := context.Background()

	creds := testCredentials("cred-1", "user@example.com")
	require.NoError(t, store.Save(ctx, creds))

	got, err := store.Get(ctx, "cred-1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.AccountIdentifier)
	require.NotNil(t, got.OAuth)
	assert.Equal(t, "access-cred-1", got.OAuth.AccessToken)
	assert.Equal(t, "refresh-cred-1", got.OAuth.RefreshToken)
}

func TestCredentialsStoreGetMissing(t *testing.T) {
	store := newTestStore(t).CredentialsStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialsStoreGetByAccount(t *testing.T) {
	store := newTestStore(t).CredentialsStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCredentials("cred-1", "user@example.com")))

	got, err := store.GetByAccount(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cred-1", got.ID)

	// Missing account is not an error, just nil.
	got, err = store.GetByAccount(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCredentialsStoreUpsert(t *testing.T) {
	store := newTestStore(t).CredentialsStore()
	ctx := context.Background()

	creds := testCredentials("cred-1", "user@example.com")
	require.NoError(t, store.Save(ctx, creds))

	creds.OAuth.AccessToken = "rotated"
	creds.UpdatedAt = creds.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.Save(ctx, creds))

	got, err := store.Get(ctx, "cred-1")
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.OAuth.AccessToken)
}

func TestCredentialsStoreSaveRequiresID(t *testing.T) {
	store := newTestStore(t).CredentialsStore()

	err := store.Save(context.Background(), domain.Credentials{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCredentialsStoreDelete(t *testing.T) {
	store := newTestStore(t).CredentialsStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCredentials("cred-1", "user@example.com")))
	require.NoError(t, store.Delete(ctx, "cred-1"))

	_, err := store.Get(ctx, "cred-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing row is a no-op.
	assert.NoError(t, store.Delete(ctx, "cred-1"))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening runs migrate again against the same file.
	s2, err := NewStore(dir)
	require.NoError(t, err)
	defer s2.Close() //nolint:errcheck

	require.NoError(t, s2.CredentialsStore().Save(context.Background(),
		testCredentials("cred-1", "user@example.com")))
}
