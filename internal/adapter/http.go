// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/models"
	"github.com/go-resty/resty/v2"
)

type httpAccountAPI struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPAccountAPI returns an [AccountAPI] talking to the server at address.
// A missing scheme defaults to http.
func NewHTTPAccountAPI(address string, timeout time.Duration, logger *logger.Logger) (AccountAPI, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpAccountAPI{client: utils.NewHTTPClient(baseURL, timeout), logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccountAPI) Register(ctx context.Context, request models.RegistrationRequest) (models.Account, error) {
	var account models.Account
	resp, err := h.request(ctx).
		SetBody(request).
		SetResult(&account).
		Post("/api/users/register")
	if err != nil {
		return models.Account{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (h *httpAccountAPI) LoginWithPassword(ctx context.Context, identifier, password string) (models.Account, error) {
	return h.login(ctx, "/api/users/login", models.PasswordLoginRequest{Identifier: identifier, Password: password})
}

func (h *httpAccountAPI) LoginWithMpin(ctx context.Context, identifier, mpin string) (models.Account, error) {
	return h.login(ctx, "/api/users/login/mpin", models.MpinLoginRequest{Identifier: identifier, Mpin: mpin})
}

func (h *httpAccountAPI) login(ctx context.Context, path string, body any) (models.Account, error) {
	var account models.Account
	resp, err := h.request(ctx).
		SetBody(body).
		SetResult(&account).
		Post(path)
	if err != nil {
		return models.Account{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	h.logger.Debug().Int64("account_id", account.AccountID).Str("path", path).Msg("login succeeded")
	return account, nil
}

func (h *httpAccountAPI) GetAccount(ctx context.Context, accountID int64) (models.Account, error) {
	return h.getAccount(ctx, accountPath(accountID))
}

func (h *httpAccountAPI) GetAccountByHandle(ctx context.Context, handle string) (models.Account, error) {
	return h.getAccount(ctx, "/api/users/handle/"+url.PathEscape(handle))
}

func (h *httpAccountAPI) getAccount(ctx context.Context, path string) (models.Account, error) {
	var account models.Account
	resp, err := h.request(ctx).SetResult(&account).Get(path)
	if err != nil {
		return models.Account{}, fmt.Errorf("get account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (h *httpAccountAPI) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return h.listAccounts(ctx, "/api/users")
}

func (h *httpAccountAPI) ListAccountsByStatus(ctx context.Context, status models.AccountStatus) ([]models.Account, error) {
	return h.listAccounts(ctx, "/api/users/status/"+url.PathEscape(string(status)))
}

func (h *httpAccountAPI) listAccounts(ctx context.Context, path string) ([]models.Account, error) {
	var accounts []models.Account
	resp, err := h.request(ctx).SetResult(&accounts).Get(path)
	if err != nil {
		return nil, fmt.Errorf("list accounts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (h *httpAccountAPI) Deactivate(ctx context.Context, accountID int64) (models.Account, error) {
	var account models.Account
	resp, err := h.request(ctx).SetResult(&account).Post(accountPath(accountID) + "/deactivate")
	if err != nil {
		return models.Account{}, fmt.Errorf("deactivate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (h *httpAccountAPI) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error {
	resp, err := h.request(ctx).
		SetBody(models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		Post(accountPath(accountID) + "/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAPI) ResetMpin(ctx context.Context, accountID int64, newMpin string) error {
	resp, err := h.request(ctx).
		SetBody(models.ResetMpinRequest{NewMpin: newMpin}).
		Post(accountPath(accountID) + "/mpin/reset")
	if err != nil {
		return fmt.Errorf("reset mpin request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAPI) DeleteAccount(ctx context.Context, accountID int64) error {
	resp, err := h.request(ctx).Delete(accountPath(accountID))
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAPI) PasswordHistory(ctx context.Context, accountID int64) ([]time.Time, error) {
	var changes []struct {
		ChangedAt time.Time `json:"changed_at"`
	}
	resp, err := h.request(ctx).SetResult(&changes).Get(accountPath(accountID) + "/password/history")
	if err != nil {
		return nil, fmt.Errorf("password history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(changes))
	for _, change := range changes {
		times = append(times, change.ChangedAt)
	}
	return times, nil
}

func (h *httpAccountAPI) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAccountAPI) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

func accountPath(accountID int64) string {
	return "/api/users/" + strconv.FormatInt(accountID, 10)
}
