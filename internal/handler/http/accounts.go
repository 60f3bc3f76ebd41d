// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/service"
	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/models"
	"github.com/go-chi/chi/v5"
)

// passwordChange is the public view of a password history entry.
type passwordChange struct {
	ChangedAt time.Time `json:"changed_at"`
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.services.AccountService.ListAccounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(accounts), http.StatusOK)
}

func (h *Handler) listAccountsByStatus(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "status")
	status, ok := models.ParseAccountStatus(raw)
	if !ok {
		writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownStatus, raw))
		return
	}

	accounts, err := h.services.AccountService.ListAccountsByStatus(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(accounts), http.StatusOK)
}

func (h *Handler) getAccountByHandle(w http.ResponseWriter, r *http.Request) {
	account, err := h.services.AccountService.GetAccountByHandle(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	accountID, _ := utils.GetAccountIDFromContext(r.Context())

	account, err := h.services.AccountService.GetAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, _ := utils.GetAccountIDFromContext(r.Context())

	if err := h.services.AccountService.DeleteAccount(r.Context(), accountID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	accountID, _ := utils.GetAccountIDFromContext(r.Context())

	account, err := h.services.AccountService.Deactivate(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, _ := utils.GetAccountIDFromContext(ctx)

	var request models.ChangePasswordRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(ctx, request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	if _, err := h.services.AccountService.ChangePassword(ctx, accountID, request.OldPassword, request.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password changed"}, http.StatusOK)
}

func (h *Handler) resetMpin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, _ := utils.GetAccountIDFromContext(ctx)

	var request models.ResetMpinRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.services.AccountService.ResetMpin(ctx, accountID, request.NewMpin); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "mpin reset"}, http.StatusOK)
}

func (h *Handler) passwordHistory(w http.ResponseWriter, r *http.Request) {
	accountID, _ := utils.GetAccountIDFromContext(r.Context())

	history, err := h.services.AccountService.PasswordHistory(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	changes := make([]passwordChange, 0, len(history))
	for _, entry := range history {
		changes = append(changes, passwordChange{ChangedAt: entry.ChangedAt})
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}

func nonNil(accounts []models.Account) []models.Account {
	if accounts == nil {
		return []models.Account{}
	}
	return accounts
}
