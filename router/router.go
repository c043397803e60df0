// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/mock-ballot/handlers"
	"github.com/danielhkuo/mock-ballot/middleware"
	"github.com/danielhkuo/mock-ballot/session"
)

func NewRouter(s *session.Session, feed *handlers.Feed) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(s, feed)
	resultsHandler := handlers.NewResultsHandler(s)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting wizard
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /session/identity", middleware.WithLogging(sessionHandler.SubmitIdentity))
	mux.HandleFunc("POST /session/otp", middleware.WithLogging(sessionHandler.SubmitOTP))
	mux.HandleFunc("POST /session/vote", middleware.WithLogging(sessionHandler.CastVote))
	mux.HandleFunc("GET /session/progress", middleware.WithLogging(sessionHandler.GetProgress))
	mux.HandleFunc("POST /session/next", middleware.WithLogging(sessionHandler.NextVoter))

	// Demo reset (clears the tally and the voter registry)
	mux.HandleFunc("POST /reset", middleware.WithLogging(sessionHandler.Reset))

	// Live results, any stage
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mock-ballot API v1"))
	})

	return mux
}
