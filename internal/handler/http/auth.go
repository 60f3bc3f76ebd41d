// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/service"
	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var request models.RegistrationRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Register(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) loginWithPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.PasswordLoginRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(ctx, request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	account, err := h.services.AuthService.VerifyPassword(ctx, request.Identifier, request.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).WithAccount(account.AccountID).Info().Msg("password login succeeded")
	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) loginWithMpin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.MpinLoginRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(ctx, request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	account, err := h.services.AuthService.VerifyMpin(ctx, request.Identifier, request.Mpin)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).WithAccount(account.AccountID).Info().Msg("mpin login succeeded")
	utils.WriteJSON(w, account, http.StatusOK)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
