// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the mock-ballot API server.

mock-ballot is a single-kiosk voting demo: a voter registers a mock VIN,
confirms a mock OTP, picks one candidate, and watches the live tally.
Each VIN may vote once until the demo is reset.

# Starting the Server

With no configuration the server stores its tally in mock-ballot.db (sqlite):

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first when present.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): File path or connection string (default: mock-ballot.db)
  - CANDIDATES (-candidates): Comma-separated ballot (default: Candidate A, B, C)
  - MOCK_OTP (-otp): Accepted one-time code (default: 123456)
  - COMMIT_DELAY (-delay): Simulated encryption time (default: 2.5s)

# Architecture

  - session: The registration/OTP/vote state machine and its commit pipeline
  - tally: Vote counts and voter registry, persisted through a key-value table
  - results: Chart projection and summaries of the tally
  - handlers: HTTP request handlers over the session
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: OTP checks and vote fingerprints
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
