// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
)

// accountRepository is the SQL implementation of [AccountRepository] for both
// PostgreSQL and SQLite. Dialect differences (placeholders, row locks, error
// codes) are carried by the embedded [*DB].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext]. Password hashes and PINs are never logged.
type accountRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account     models.Account
		status      string
		lockedUntil sql.NullTime
	)

	err := row.Scan(
		&account.AccountID,
		&account.Username,
		&account.FirstName,
		&account.LastName,
		&account.DateOfBirth,
		&account.PAN,
		&account.Mobile,
		&account.Email,
		&account.PasswordHash,
		&account.Mpin,
		&status,
		&account.FailedMpinAttempts,
		&lockedUntil,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	account.Status = models.AccountStatus(status)
	if lockedUntil.Valid {
		t := lockedUntil.Time
		account.LockedUntil = &t
	}

	return account, nil
}

// FindAccount looks an account up by username, mobile or email.
func (r *accountRepository) FindAccount(ctx context.Context, identifier string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAccountQuery(r.builder(), identifier, false)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.FindAccount").Msg("failed to build query")
		return models.Account{}, err
	}

	return r.findOne(ctx, "accountRepository.FindAccount", query, args)
}

// FindAccountByID looks an account up by its primary key.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAccountByIDQuery(r.builder(), accountID, false)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.FindAccountByID").Int64("account_id", accountID).Msg("failed to build query")
		return models.Account{}, err
	}

	return r.findOne(ctx, "accountRepository.FindAccountByID", query, args)
}

func (r *accountRepository) findOne(ctx context.Context, fn, query string, args []any) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := scanAccount(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Bool("retryable", r.retryable(err)).
			Msg("failed to load account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

// SaveAccount inserts a new account (AccountID == 0) or overwrites an existing
// one. Updates go through [accountRepository.UpdateAccount] so they take the
// same row lock and record password history.
func (r *accountRepository) SaveAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.AccountID != 0 {
		return r.UpdateAccount(ctx, models.ByID(account.AccountID), func(models.Account) (models.Account, bool, error) {
			return account, true, nil
		})
	}

	log := logger.FromContext(ctx)

	now := r.now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	query, args, err := buildInsertAccountQuery(r.builder(), account)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.SaveAccount").Msg("failed to build insert query")
		return models.Account{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.SaveAccount").Msg("failed to begin transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = r.ensureHandlesFree(ctx, tx, account); err != nil {
		return models.Account{}, err
	}

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&account.AccountID); err != nil {
		if r.errorClassificator != nil && r.errorClassificator.IsUniqueViolation(err) {
			log.Warn().Str("func", "accountRepository.SaveAccount").Msg("account handle already taken")
			return models.Account{}, ErrDuplicateHandle
		}

		log.Err(err).
			Str("func", "accountRepository.SaveAccount").
			Bool("retryable", r.retryable(err)).
			Msg("failed to insert account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "accountRepository.SaveAccount").Msg("failed to commit transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "accountRepository.SaveAccount").
		Int64("account_id", account.AccountID).
		Msg("account created")

	return account, nil
}

// UpdateAccount loads the account identified by key inside a transaction,
// holding a row lock (PostgreSQL) or the only pool connection (SQLite), and
// persists what mutation returns.
//
// When the mutation asks for a write, the new state is stored even if the
// mutation also returned an error; that error is then returned alongside the
// stored account. A failed write or commit is returned instead of the
// mutation's error.
func (r *accountRepository) UpdateAccount(ctx context.Context, key models.AccountKey, mutation AccountMutation) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.lookupQuery(key, r.rowLocks)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.UpdateAccount").Msg("failed to build lookup query")
		return models.Account{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.UpdateAccount").Msg("failed to begin transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, err := scanAccount(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.UpdateAccount").
			Bool("retryable", r.retryable(err)).
			Msg("failed to load account for update")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	next, save, mutationErr := mutation(current)
	if !save {
		return next, mutationErr
	}

	next.AccountID = current.AccountID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = r.now()

	if handlesChanged(current, next) {
		if err = r.ensureHandlesFree(ctx, tx, next); err != nil {
			return models.Account{}, err
		}
	}

	if err = r.writeAccount(ctx, tx, next); err != nil {
		return models.Account{}, err
	}

	if next.PasswordHash != current.PasswordHash {
		if err = r.appendPasswordHistory(ctx, tx, next.AccountID, next.PasswordHash, next.UpdatedAt); err != nil {
			return models.Account{}, err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "accountRepository.UpdateAccount").
			Int64("account_id", next.AccountID).
			Msg("failed to commit transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Debug().
		Str("func", "accountRepository.UpdateAccount").
		Int64("account_id", next.AccountID).
		Str("status", string(next.Status)).
		Int("failed_mpin_attempts", next.FailedMpinAttempts).
		Msg("account updated")

	return next, mutationErr
}

func (r *accountRepository) lookupQuery(key models.AccountKey, forUpdate bool) (string, []any, error) {
	switch {
	case key.AccountID != 0:
		return buildFindAccountByIDQuery(r.builder(), key.AccountID, forUpdate)
	case key.Handle != "":
		return buildFindAccountQuery(r.builder(), key.Handle, forUpdate)
	default:
		return "", nil, ErrAccountNotFound
	}
}

// ensureHandlesFree rejects account when another row uses one of its handles
// in any column. The unique indexes only cover each column on its own.
func (r *accountRepository) ensureHandlesFree(ctx context.Context, tx *sql.Tx, account models.Account) error {
	log := logger.FromContext(ctx)

	query, args, err := buildHandleConflictQuery(r.builder(), account)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ensureHandlesFree").Msg("failed to build conflict query")
		return err
	}

	// Row locks cannot cover rows that do not exist yet, so concurrent handle
	// writers are serialized on a transaction-scoped advisory lock.
	if r.rowLocks {
		if _, err = tx.ExecContext(ctx, handleWriteLockQuery, handleWriteLockKey); err != nil {
			log.Err(err).Str("func", "accountRepository.ensureHandlesFree").Msg("failed to take handle lock")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	var otherID int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&otherID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		log.Err(err).
			Str("func", "accountRepository.ensureHandlesFree").
			Bool("retryable", r.retryable(err)).
			Msg("failed to check handle uniqueness")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	default:
		log.Warn().
			Str("func", "accountRepository.ensureHandlesFree").
			Int64("account_id", account.AccountID).
			Int64("conflicting_account_id", otherID).
			Msg("account handle already taken")
		return ErrDuplicateHandle
	}
}

func (r *accountRepository) writeAccount(ctx context.Context, tx *sql.Tx, account models.Account) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateAccountQuery(r.builder(), account)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.writeAccount").Msg("failed to build update query")
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if r.errorClassificator != nil && r.errorClassificator.IsUniqueViolation(err) {
			log.Warn().Str("func", "accountRepository.writeAccount").Int64("account_id", account.AccountID).Msg("account handle already taken")
			return ErrDuplicateHandle
		}

		log.Err(err).
			Str("func", "accountRepository.writeAccount").
			Int64("account_id", account.AccountID).
			Bool("retryable", r.retryable(err)).
			Msg("failed to update account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) appendPasswordHistory(ctx context.Context, tx *sql.Tx, accountID int64, passwordHash string, changedAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertPasswordHistoryQuery(r.builder(), accountID, passwordHash, changedAt)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.appendPasswordHistory").Msg("failed to build insert query")
		return err
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "accountRepository.appendPasswordHistory").
			Int64("account_id", accountID).
			Msg("failed to append password history")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteAccount removes the account and, through the foreign key, its
// password history.
func (r *accountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteAccountQuery(r.builder(), accountID)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.DeleteAccount").Msg("failed to build delete query")
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.DeleteAccount").
			Int64("account_id", accountID).
			Bool("retryable", r.retryable(err)).
			Msg("failed to delete account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	log.Info().Str("func", "accountRepository.DeleteAccount").Int64("account_id", accountID).Msg("account deleted")
	return nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return r.listAccounts(ctx, nil)
}

func (r *accountRepository) ListAccountsByStatus(ctx context.Context, status models.AccountStatus) ([]models.Account, error) {
	return r.listAccounts(ctx, &status)
}

func (r *accountRepository) listAccounts(ctx context.Context, status *models.AccountStatus) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAccountsQuery(r.builder(), status)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.listAccounts").Msg("failed to build query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.listAccounts").
			Bool("retryable", r.retryable(err)).
			Msg("failed to execute query for listing accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, 16)
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "accountRepository.listAccounts").Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		accounts = append(accounts, account)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "accountRepository.listAccounts").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return accounts, nil
}

func (r *accountRepository) ListPasswordHistory(ctx context.Context, accountID int64, limit int) ([]models.PasswordHistory, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPasswordHistoryQuery(r.builder(), accountID, limit)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ListPasswordHistory").Msg("failed to build query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.ListPasswordHistory").
			Int64("account_id", accountID).
			Msg("failed to execute query for password history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	history := make([]models.PasswordHistory, 0, limit)
	for rows.Next() {
		var entry models.PasswordHistory
		if scanErr := rows.Scan(&entry.HistoryID, &entry.AccountID, &entry.PasswordHash, &entry.ChangedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "accountRepository.ListPasswordHistory").Msg("failed to scan history row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		history = append(history, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return history, nil
}

func (r *accountRepository) retryable(err error) bool {
	return r.errorClassificator != nil && r.errorClassificator.Classify(err) == Retryable
}
