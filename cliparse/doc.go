// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file or PostgreSQL connection string (default: mock-ballot.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - Candidates: ordered candidate names (default: Candidate A, B, C)
  - ExpectedOTP: the mock one-time password (default: 123456)
  - CommitDelay: simulated encryption delay (default: 2.5s)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-candidates   Comma-separated candidate list
	-otp          Mock OTP
	-delay        Commit delay (Go duration, e.g. 2s)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CANDIDATES    → -candidates
	MOCK_OTP      → -otp
	COMMIT_DELAY  → -delay

CLI flags take precedence over environment variables. main loads a .env file
into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - the database type is neither sqlite nor postgres
  - postgres is selected without a database URL
  - a candidate name is empty or repeated
  - the delay does not parse or is negative
*/
package cliparse
