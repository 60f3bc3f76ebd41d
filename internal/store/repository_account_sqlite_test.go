// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
)

func newSQLiteRepo(t *testing.T) AccountRepository {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnect(ctx, config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "accounts.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return NewAccountRepository(db, logger.Nop())
}

func newAccount(username, mobile, email, pan string) models.Account {
	return models.Account{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		DateOfBirth:  "1991-01-01",
		PAN:          pan,
		Mobile:       mobile,
		Email:        email,
		PasswordHash: "hash-0",
		Mpin:         "1234",
		Status:       models.StatusActive,
	}
}

func TestSQLite_SaveAndFindByEveryHandle(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)
	require.NotZero(t, saved.AccountID)

	for _, handle := range []string{"alice", "9000000001", "alice@example.com"} {
		found, findErr := repo.FindAccount(ctx, handle)
		require.NoError(t, findErr, handle)
		assert.Equal(t, saved.AccountID, found.AccountID, handle)
	}

	byID, err := repo.FindAccountByID(ctx, saved.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Nil(t, byID.LockedUntil)

	_, err = repo.FindAccount(ctx, "nobody")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

// TestSQLite_LookupPriority checks that a username match beats a mobile match
// on another account.
func TestSQLite_LookupPriority(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)
	bob, err := repo.SaveAccount(ctx, newAccount("9000000001", "9000000002", "bob@example.com", "ABCDE1235F"))
	require.NoError(t, err)

	found, err := repo.FindAccount(ctx, "9000000001")
	require.NoError(t, err)
	assert.Equal(t, bob.AccountID, found.AccountID)
}

func TestSQLite_DuplicateHandle(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)

	_, err = repo.SaveAccount(ctx, newAccount("alice2", "9000000009", "alice@example.com", "ABCDE9999F"))
	assert.ErrorIs(t, err, ErrDuplicateHandle)
}

func TestSQLite_HandleCannotShadowAnotherColumn(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	alice, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)

	_, err = repo.SaveAccount(ctx, newAccount("9000000001", "9000000002", "mallory@example.com", "ABCDE5678F"))
	assert.ErrorIs(t, err, ErrDuplicateHandle)

	bob, err := repo.SaveAccount(ctx, newAccount("bob", "9000000003", "bob@example.com", "ABCDE9999F"))
	require.NoError(t, err)

	_, err = repo.UpdateAccount(ctx, models.ByID(bob.AccountID), func(a models.Account) (models.Account, bool, error) {
		a.Email = "alice"
		return a, true, nil
	})
	assert.ErrorIs(t, err, ErrDuplicateHandle)

	found, err := repo.FindAccount(ctx, "9000000001")
	require.NoError(t, err)
	assert.Equal(t, alice.AccountID, found.AccountID)

	found, err = repo.FindAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.AccountID, found.AccountID)
}

func TestSQLite_SaveFindRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)

	before, err := repo.FindAccountByID(ctx, saved.AccountID)
	require.NoError(t, err)

	_, err = repo.SaveAccount(ctx, before)
	require.NoError(t, err)

	after, err := repo.FindAccountByID(ctx, saved.AccountID)
	require.NoError(t, err)

	assert.Equal(t, before.Username, after.Username)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, before.Mpin, after.Mpin)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.FailedMpinAttempts, after.FailedMpinAttempts)
	assert.Equal(t, before.LockedUntil, after.LockedUntil)
	assert.WithinDuration(t, before.CreatedAt, after.CreatedAt, time.Millisecond)

	history, err := repo.ListPasswordHistory(ctx, saved.AccountID, 5)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLite_LockRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)

	until := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	_, err = repo.UpdateAccount(ctx, models.ByHandle("alice"), func(a models.Account) (models.Account, bool, error) {
		a.Status = models.StatusLocked
		a.LockedUntil = &until
		return a, true, nil
	})
	require.NoError(t, err)

	locked, err := repo.ListAccountsByStatus(ctx, models.StatusLocked)
	require.NoError(t, err)
	require.Len(t, locked, 1)
	assert.Equal(t, saved.AccountID, locked[0].AccountID)
	require.NotNil(t, locked[0].LockedUntil)
	assert.True(t, until.Equal(*locked[0].LockedUntil))

	active, err := repo.ListAccountsByStatus(ctx, models.StatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSQLite_PasswordHistoryNewestFirst(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)

	for _, hash := range []string{"hash-1", "hash-2", "hash-3", "hash-4", "hash-5", "hash-6"} {
		_, err = repo.UpdateAccount(ctx, models.ByID(saved.AccountID), func(a models.Account) (models.Account, bool, error) {
			a.PasswordHash = hash
			return a, true, nil
		})
		require.NoError(t, err)
	}

	history, err := repo.ListPasswordHistory(ctx, saved.AccountID, 5)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, "hash-6", history[0].PasswordHash)
	assert.Equal(t, "hash-2", history[4].PasswordHash)
}

func TestSQLite_DeleteCascades(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)
	_, err = repo.UpdateAccount(ctx, models.ByID(saved.AccountID), func(a models.Account) (models.Account, bool, error) {
		a.PasswordHash = "hash-1"
		return a, true, nil
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAccount(ctx, saved.AccountID))
	assert.ErrorIs(t, repo.DeleteAccount(ctx, saved.AccountID), ErrAccountNotFound)

	history, err := repo.ListPasswordHistory(ctx, saved.AccountID, 5)
	require.NoError(t, err)
	assert.Empty(t, history)
}

// TestSQLite_ConcurrentUpdatesAreSerialized increments the MPIN counter from
// many goroutines; no increment may be lost.
func TestSQLite_ConcurrentUpdatesAreSerialized(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, newAccount("alice", "9000000001", "alice@example.com", "ABCDE1234F"))
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, updErr := repo.UpdateAccount(ctx, models.ByID(saved.AccountID), func(a models.Account) (models.Account, bool, error) {
				a.FailedMpinAttempts++
				return a, true, nil
			})
			errs <- updErr
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		require.NoError(t, e)
	}

	got, err := repo.FindAccountByID(ctx, saved.AccountID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.FailedMpinAttempts)
}
