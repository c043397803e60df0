// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - SubmitIdentityRequest: identity (mock VIN)
  - SubmitOTPRequest: code
  - CastVoteRequest: candidate

# Response Types

  - SessionResponse: session_id, stage, voter_id, candidates, message
  - CastVoteResponse: stage, fingerprint, message, results
  - ProgressResponse: in_flight, percent, dots
  - ResultsResponse: labels, counts, total, summary, chart
  - ErrorResponse: error, message, severity, stage

# Domain Types

  - Stage: registering, awaiting_otp, voting, showing_results
  - Severity: info, success, warning, danger
  - Message: severity-tagged notice for the view
  - Results: labels and counts in candidate order, plus total
*/
package models
