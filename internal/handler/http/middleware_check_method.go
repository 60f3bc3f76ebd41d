// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/models"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A path served under a different method is answered with 404 instead of
// chi's 405, so callers trying unsupported methods cannot tell which
// routes exist. It must not re-enter the router: chi only calls it after
// routing has already failed for this method.
//
//	router.MethodNotAllowed(CheckHTTPMethod())
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
	}
}
