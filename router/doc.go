// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the mock-ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux over one voting session:

	mux := router.NewRouter(s, feed)

# Endpoints

Health:

	GET /health

Voting wizard:

	GET  /session          - Stage, candidates and the latest notice
	POST /session/identity - Register a 10-digit mock VIN
	POST /session/otp      - Verify the one-time code
	POST /session/vote     - Cast the ballot (blocks for the commit delay)
	GET  /session/progress - Encryption progress of the vote in flight
	POST /session/next     - Hand the kiosk to the next voter

Demo control:

	POST /reset - Clear the tally and the voter registry

Results (any stage):

	GET /results?chart=pie|bar

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
