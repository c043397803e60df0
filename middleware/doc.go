// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request id is taken from X-Request-ID or
generated, and echoed back in the response header.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
	middleware.MessageResponse(w, http.StatusConflict, msg, stage)

MessageResponse carries a severity-tagged view message and the stage the
session is in after the failed call.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
