// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &accountRepository{
		DB:     newPostgresDB(db, l),
		logger: l,
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testAccount() models.Account {
	return models.Account{
		AccountID:    1,
		Username:     "alice",
		FirstName:    "Alice",
		LastName:     "Liddell",
		DateOfBirth:  "1990-05-17",
		PAN:          "ABCDE1234F",
		Mobile:       "9000000001",
		Email:        "alice@example.com",
		PasswordHash: "hash-1",
		Mpin:         "1234",
		Status:       models.StatusActive,
		CreatedAt:    fixedNow.Add(-time.Hour),
		UpdatedAt:    fixedNow.Add(-time.Hour),
	}
}

// expectHandlesFree expects the advisory lock and an empty conflict lookup.
func expectHandlesFree(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1\)`).WithArgs(handleWriteLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT account_id FROM accounts WHERE .+ AND account_id <> \$\d+\) LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}))
}

func accountRows(accounts ...models.Account) *sqlmock.Rows {
	rows := sqlmock.NewRows(accountColumns)
	for _, a := range accounts {
		var lockedUntil driver.Value
		if a.LockedUntil != nil {
			lockedUntil = *a.LockedUntil
		}
		rows.AddRow(
			a.AccountID, a.Username, a.FirstName, a.LastName, a.DateOfBirth,
			a.PAN, a.Mobile, a.Email, a.PasswordHash, a.Mpin,
			string(a.Status), a.FailedMpinAttempts, lockedUntil, a.CreatedAt, a.UpdatedAt,
		)
	}
	return rows
}

// ─────────────────────────────────────────────────────────────────────────────
// FindAccount / FindAccountByID
// ─────────────────────────────────────────────────────────────────────────────

func TestFindAccount_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	want := testAccount()

	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE \(username = \$1 OR mobile = \$2 OR email = \$3\)`).
		WithArgs("alice", "alice", "alice", "alice", "alice").
		WillReturnRows(accountRows(want))

	got, err := repo.FindAccount(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAccount_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM accounts`).WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindAccount(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestFindAccount_QueryError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM accounts`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindAccount(context.Background(), "alice")

	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestFindAccountByID_LockedAccount(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	want := testAccount()
	until := fixedNow.Add(24 * time.Hour)
	want.Status = models.StatusLocked
	want.LockedUntil = &until

	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE account_id = \$1$`).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(want))

	got, err := repo.FindAccountByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, got.LockedUntil)
	assert.True(t, until.Equal(*got.LockedUntil))
	assert.Equal(t, models.StatusLocked, got.Status)
}

// ─────────────────────────────────────────────────────────────────────────────
// SaveAccount (insert)
// ─────────────────────────────────────────────────────────────────────────────

func TestSaveAccount_Insert(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()
	account.AccountID = 0
	account.CreatedAt = time.Time{}

	mock.ExpectBegin()
	expectHandlesFree(mock)
	mock.ExpectQuery(`INSERT INTO accounts .+ RETURNING account_id`).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	saved, err := repo.SaveAccount(context.Background(), account)

	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.AccountID)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.Equal(t, fixedNow, saved.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAccount_InsertDuplicate(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()
	account.AccountID = 0

	mock.ExpectBegin()
	expectHandlesFree(mock)
	mock.ExpectQuery(`INSERT INTO accounts`).WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.SaveAccount(context.Background(), account)

	assert.ErrorIs(t, err, ErrDuplicateHandle)
}

func TestSaveAccount_InsertUnexpectedError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()
	account.AccountID = 0

	mock.ExpectBegin()
	expectHandlesFree(mock)
	mock.ExpectQuery(`INSERT INTO accounts`).WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectRollback()

	_, err := repo.SaveAccount(context.Background(), account)

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrDuplicateHandle)
}

func TestSaveAccount_InsertHandleUsedInOtherColumn(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()
	account.AccountID = 0
	account.Username = "9000000002"

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT account_id FROM accounts WHERE \(\(username IN \(\$1,\$2,\$3\) OR mobile IN \(\$4,\$5,\$6\) OR email IN \(\$7,\$8,\$9\)\) AND account_id <> \$10\) LIMIT 1`).
		WithArgs(
			"9000000002", "9000000001", "alice@example.com",
			"9000000002", "9000000001", "alice@example.com",
			"9000000002", "9000000001", "alice@example.com",
			int64(0),
		).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(2)))
	mock.ExpectRollback()

	_, err := repo.SaveAccount(context.Background(), account)

	require.ErrorIs(t, err, ErrDuplicateHandle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateAccount
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateAccount_WritesAndCommits(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	current := testAccount()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE account_id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(current))
	mock.ExpectExec(`UPDATE accounts SET .+ WHERE account_id = \$14`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		a.FailedMpinAttempts = 2
		return a, true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.FailedMpinAttempts)
	assert.Equal(t, current.CreatedAt, got.CreatedAt)
	assert.Equal(t, fixedNow, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccount_ByHandleLocksRow(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE \(username = \$1 .+ LIMIT 1 FOR UPDATE`).
		WillReturnRows(accountRows(testAccount()))
	mock.ExpectRollback()

	_, err := repo.UpdateAccount(context.Background(), models.ByHandle("alice"), func(a models.Account) (models.Account, bool, error) {
		return a, false, nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpdateAccount_PersistsAndReturnsMutationError covers the wrong-PIN
// path: the counter is written and the domain error still reaches the caller.
func TestUpdateAccount_PersistsAndReturnsMutationError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	domainErr := errors.New("invalid pin")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		a.FailedMpinAttempts = 1
		return a, true, domainErr
	})

	assert.ErrorIs(t, err, domainErr)
	assert.Equal(t, 1, got.FailedMpinAttempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccount_NoSaveRollsBack(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	domainErr := errors.New("locked")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	mock.ExpectRollback()

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		return a, false, domainErr
	})

	assert.ErrorIs(t, err, domainErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccount_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	called := false

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(sqlmock.NewRows(accountColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateAccount(context.Background(), models.ByID(99), func(a models.Account) (models.Account, bool, error) {
		called = true
		return a, true, nil
	})

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccount_EmptyKey(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	_, err := repo.UpdateAccount(context.Background(), models.AccountKey{}, func(a models.Account) (models.Account, bool, error) {
		return a, true, nil
	})

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccount_PasswordChangeAppendsHistory(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO password_history \(account_id,password_hash,changed_at\) VALUES \(\$1,\$2,\$3\)`).
		WithArgs(int64(1), "hash-2", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		a.PasswordHash = "hash-2"
		return a, true, nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpdateAccount_WriteErrorWins verifies that a failed write replaces the
// mutation's domain error.
func TestUpdateAccount_WriteErrorWins(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	domainErr := errors.New("invalid pin")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	mock.ExpectExec(`UPDATE accounts`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		a.FailedMpinAttempts = 1
		return a, true, domainErr
	})

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, domainErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccount_CommitErrorWins(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	domainErr := errors.New("invalid pin")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		return a, true, domainErr
	})

	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NotErrorIs(t, err, domainErr)
}

func TestUpdateAccount_BeginError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("cannot begin"))

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		return a, true, nil
	})

	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestUpdateAccount_DuplicateHandle(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	expectHandlesFree(mock)
	mock.ExpectExec(`UPDATE accounts`).WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		a.Email = "taken@example.com"
		return a, true, nil
	})

	assert.ErrorIs(t, err, ErrDuplicateHandle)
}

func TestUpdateAccount_HandleTakenByAnotherAccount(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FOR UPDATE`).WillReturnRows(accountRows(testAccount()))
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT account_id FROM accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(9)))
	mock.ExpectRollback()

	_, err := repo.UpdateAccount(context.Background(), models.ByID(1), func(a models.Account) (models.Account, bool, error) {
		a.Username = "bob@example.com"
		return a, true, nil
	})

	require.ErrorIs(t, err, ErrDuplicateHandle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAccount_UpdateExisting(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()
	account.Status = models.StatusDeactivated

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE account_id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(testAccount()))
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := repo.SaveAccount(context.Background(), account)

	require.NoError(t, err)
	assert.Equal(t, models.StatusDeactivated, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteAccount
// ─────────────────────────────────────────────────────────────────────────────

func TestDeleteAccount(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		execErr error
		wantErr error
	}{
		{name: "deleted", result: sqlmock.NewResult(0, 1)},
		{name: "missing", result: sqlmock.NewResult(0, 0), wantErr: ErrAccountNotFound},
		{name: "driver error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)

			exp := mock.ExpectExec(`DELETE FROM accounts WHERE account_id = \$1`).WithArgs(int64(5))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.DeleteAccount(context.Background(), 5)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Listing
// ─────────────────────────────────────────────────────────────────────────────

func TestListAccountsByStatus(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	first := testAccount()
	second := testAccount()
	second.AccountID = 2
	second.Username = "bob"

	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE status = \$1 ORDER BY account_id`).
		WithArgs("ACTIVE").
		WillReturnRows(accountRows(first, second))

	got, err := repo.ListAccountsByStatus(context.Background(), models.StatusActive)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[1].Username)
}

func TestListAccounts_Empty(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM accounts ORDER BY account_id`).WillReturnRows(sqlmock.NewRows(accountColumns))

	got, err := repo.ListAccounts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListAccounts_RowError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	rows := accountRows(testAccount()).RowError(0, errors.New("broken row"))
	mock.ExpectQuery(`SELECT .+ FROM accounts`).WillReturnRows(rows)

	_, err := repo.ListAccounts(context.Background())

	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestListPasswordHistory(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT history_id, account_id, password_hash, changed_at FROM password_history WHERE account_id = \$1 ORDER BY changed_at DESC, history_id DESC LIMIT 5`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(passwordHistoryColumns).
			AddRow(int64(2), int64(1), "hash-3", fixedNow).
			AddRow(int64(1), int64(1), "hash-2", fixedNow.Add(-time.Hour)))

	got, err := repo.ListPasswordHistory(context.Background(), 1, 5)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].HistoryID)
	assert.Equal(t, fixedNow, got[0].ChangedAt)
}

func TestListPasswordHistory_QueryError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`FROM password_history`).WillReturnError(sql.ErrConnDone)

	_, err := repo.ListPasswordHistory(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrExecutingQuery)
}
