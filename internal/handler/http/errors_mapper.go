// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/service"
	"github.com/MKhiriev/go-account-guard/internal/store"
	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/models"
)

// errorStatuses is checked in order. Account state wins over credential
// failures so an error wrapping both maps to the same status every time.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrAccountLocked, http.StatusLocked},
	{service.ErrAccountDeactivated, http.StatusForbidden},
	{service.ErrAccountNotActive, http.StatusForbidden},

	{service.ErrInvalidCredential, http.StatusUnauthorized},
	{service.ErrInvalidPin, http.StatusUnauthorized},

	{store.ErrAccountNotFound, http.StatusNotFound},
	{store.ErrDuplicateHandle, http.StatusConflict},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidAccountID, http.StatusBadRequest},
	{ErrUnknownStatus, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidPinFormat, http.StatusBadRequest},
	{service.ErrPinReused, http.StatusBadRequest},
	{service.ErrPasswordReused, http.StatusBadRequest},
}

func statusFromError(err error) int {
	for _, entry := range errorStatuses {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the JSON body for err. Internal failures are reported
// by status text only.
func errorResponse(err error, status int) models.ErrorResponse {
	if status == http.StatusInternalServerError {
		return models.ErrorResponse{Error: http.StatusText(status)}
	}

	response := models.ErrorResponse{Error: publicMessage(err)}

	var pinErr *service.InvalidPinError
	var lockedErr *service.AccountLockedError
	switch {
	case errors.As(err, &pinErr):
		response.Attempt = pinErr.Attempt
		response.MaxAttempts = pinErr.MaxAttempts
		response.LockedUntil = pinErr.LockedUntil
	case errors.As(err, &lockedErr):
		until := lockedErr.Until
		response.LockedUntil = &until
	}

	return response
}

// publicMessage hides which handle or password check failed behind the
// sentinel text.
func publicMessage(err error) string {
	for _, target := range []error{
		store.ErrAccountNotFound,
		store.ErrDuplicateHandle,
		service.ErrInvalidCredential,
		service.ErrInvalidPin,
		service.ErrAccountLocked,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, errorResponse(err, status), status)
}
