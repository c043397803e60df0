// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the mock-ballot API.

# Handler Types

  - SessionHandler: the registration, OTP and voting wizard
  - ResultsHandler: the live tally, available in every stage

Both wrap a single *session.Session. Feed is the session.View the HTTP
layer installs so responses can carry the latest results. The latest notice
comes from session.State, read under the same lock as the stage:

	feed := handlers.NewFeed()
	s := session.New(store, cfg, session.WithView(feed))
	sessionHandler := handlers.NewSessionHandler(s, feed)

# Wizard Flow

	POST /session/identity → SubmitIdentity (registering → awaiting_otp)
	POST /session/otp      → SubmitOTP (awaiting_otp → voting)
	POST /session/vote     → CastVote (voting → showing_results)
	POST /session/next     → NextVoter (showing_results → registering)
	POST /reset            → Reset (any stage → registering, tally cleared)

CastVote blocks for the configured commit delay. GET /session/progress
reports the encryption animation while it runs.

# Errors

Failures are written as models.ErrorResponse with the user-facing message,
its severity and the stage the session is in. StatusFor picks the code:

	validation, selection      → 400
	OTP mismatch               → 401
	duplicate, stage, in flight → 409
	session state              → 412
	storage and anything else  → 500
*/
package handlers
