// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/go-chi/chi/v5"
)

// withAccountID parses the {id} path segment and stores it in the request
// context under utils.AccountIDCtxKey.
func (h *Handler) withAccountID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || accountID < 1 {
			writeError(w, r, ErrInvalidAccountID)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithAccountID(r.Context(), accountID)))
	})
}
