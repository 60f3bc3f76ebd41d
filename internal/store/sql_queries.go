// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-account-guard/models"
)

const (
	accountsTable        = "accounts"
	passwordHistoryTable = "password_history"
)

// accountColumns is the column order expected by scanAccount.
var accountColumns = []string{
	"account_id",
	"username",
	"first_name",
	"last_name",
	"date_of_birth",
	"pan",
	"mobile",
	"email",
	"password_hash",
	"mpin",
	"status",
	"failed_mpin_attempts",
	"locked_until",
	"created_at",
	"updated_at",
}

// handleWriteLockQuery takes the PostgreSQL advisory lock that serializes
// writes changing account handles.
const (
	handleWriteLockQuery = "SELECT pg_advisory_xact_lock($1)"
	handleWriteLockKey   = int64(0x61636374)
)

var passwordHistoryColumns = []string{
	"history_id",
	"account_id",
	"password_hash",
	"changed_at",
}

// buildFindAccountQuery matches identifier against every handle and keeps the
// best ranked row: username, then mobile, then email.
func buildFindAccountQuery(sb sq.StatementBuilderType, identifier string, forUpdate bool) (string, []any, error) {
	q := sb.
		Select(accountColumns...).
		From(accountsTable).
		Where(sq.Or{
			sq.Eq{"username": identifier},
			sq.Eq{"mobile": identifier},
			sq.Eq{"email": identifier},
		}).
		OrderByClause("CASE WHEN username = ? THEN 0 WHEN mobile = ? THEN 1 ELSE 2 END", identifier, identifier).
		Limit(1)

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindAccountByIDQuery(sb sq.StatementBuilderType, accountID int64, forUpdate bool) (string, []any, error) {
	q := sb.
		Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"account_id": accountID})

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildHandleConflictQuery finds another account that already uses any of
// the account's handles in any handle column.
func buildHandleConflictQuery(sb sq.StatementBuilderType, account models.Account) (string, []any, error) {
	handles := accountHandles(account)
	if len(handles) == 0 {
		return "", nil, fmt.Errorf("%w: account has no handles", ErrBuildingSQLQuery)
	}

	query, args, err := sb.
		Select("account_id").
		From(accountsTable).
		Where(sq.And{
			sq.Or{
				sq.Eq{"username": handles},
				sq.Eq{"mobile": handles},
				sq.Eq{"email": handles},
			},
			sq.NotEq{"account_id": account.AccountID},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func accountHandles(account models.Account) []string {
	handles := make([]string, 0, 3)
	for _, handle := range []string{account.Username, account.Mobile, account.Email} {
		if handle != "" {
			handles = append(handles, handle)
		}
	}
	return handles
}

func handlesChanged(current, next models.Account) bool {
	return current.Username != next.Username || current.Mobile != next.Mobile || current.Email != next.Email
}

// buildListAccountsQuery lists every account ordered by id. A nil status
// disables the status filter.
func buildListAccountsQuery(sb sq.StatementBuilderType, status *models.AccountStatus) (string, []any, error) {
	q := sb.
		Select(accountColumns...).
		From(accountsTable).
		OrderBy("account_id")

	if status != nil {
		q = q.Where(sq.Eq{"status": string(*status)})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildInsertAccountQuery inserts every column except account_id and returns
// the generated id.
func buildInsertAccountQuery(sb sq.StatementBuilderType, account models.Account) (string, []any, error) {
	query, args, err := sb.
		Insert(accountsTable).
		Columns(accountColumns[1:]...).
		Values(
			account.Username,
			account.FirstName,
			account.LastName,
			account.DateOfBirth,
			account.PAN,
			account.Mobile,
			account.Email,
			account.PasswordHash,
			account.Mpin,
			string(account.Status),
			account.FailedMpinAttempts,
			account.LockedUntil,
			account.CreatedAt,
			account.UpdatedAt,
		).
		Suffix("RETURNING account_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateAccountQuery overwrites every mutable column of the account
// identified by account.AccountID. created_at is never updated.
func buildUpdateAccountQuery(sb sq.StatementBuilderType, account models.Account) (string, []any, error) {
	query, args, err := sb.
		Update(accountsTable).
		SetMap(map[string]any{
			"username":             account.Username,
			"first_name":           account.FirstName,
			"last_name":            account.LastName,
			"date_of_birth":        account.DateOfBirth,
			"pan":                  account.PAN,
			"mobile":               account.Mobile,
			"email":                account.Email,
			"password_hash":        account.PasswordHash,
			"mpin":                 account.Mpin,
			"status":               string(account.Status),
			"failed_mpin_attempts": account.FailedMpinAttempts,
			"locked_until":         account.LockedUntil,
			"updated_at":           account.UpdatedAt,
		}).
		Where(sq.Eq{"account_id": account.AccountID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteAccountQuery(sb sq.StatementBuilderType, accountID int64) (string, []any, error) {
	query, args, err := sb.
		Delete(accountsTable).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertPasswordHistoryQuery(sb sq.StatementBuilderType, accountID int64, passwordHash string, changedAt time.Time) (string, []any, error) {
	query, args, err := sb.
		Insert(passwordHistoryTable).
		Columns(passwordHistoryColumns[1:]...).
		Values(accountID, passwordHash, changedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildListPasswordHistoryQuery(sb sq.StatementBuilderType, accountID int64, limit int) (string, []any, error) {
	if limit < 1 {
		return "", nil, fmt.Errorf("%w: limit must be positive, got %d", ErrBuildingSQLQuery, limit)
	}

	query, args, err := sb.
		Select(passwordHistoryColumns...).
		From(passwordHistoryTable).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("changed_at DESC", "history_id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
