// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(h.requestTimeout))
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.loginWithPassword)
		r.Post("/login/mpin", h.loginWithMpin)

		r.Get("/", h.listAccounts)
		r.Get("/handle/{handle}", h.getAccountByHandle)
		r.Get("/status/{status}", h.listAccountsByStatus)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.withAccountID)

			r.Get("/", h.getAccount)
			r.Delete("/", h.deleteAccount)
			r.Post("/deactivate", h.deactivate)
			r.Post("/password", h.changePassword)
			r.Get("/password/history", h.passwordHistory)
			r.Post("/mpin/reset", h.resetMpin)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
