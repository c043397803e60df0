// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the digest primitive and the demo's mock verification helpers.

None of this is security. The OTP is a fixed value from configuration and the
fingerprint is a display string.

# Digest

	hex := auth.Digest("anything") // SHA-256, 64 hex characters

# Vote Fingerprints

A fingerprint is the digest of a vote record's JSON form:

	fp := auth.Fingerprint(auth.VoteRecord{
		Voter:     vin,
		Candidate: "Candidate B",
		Timestamp: now,
	})
	shown := auth.ShortFingerprint(fp) // "3f9a0c12de..."

The timestamp is encoded as a UTC ISO-8601 string with milliseconds.

# OTP Check

	ok := auth.CheckOTP(submitted, cfg.ExpectedOTP)

Comparison is constant time; surrounding whitespace in the submission is ignored.

# Session IDs

	id := auth.NewSessionID() // random UUID

# Log Masking

	auth.MaskIdentity("1234567890") // "******7890"
*/
package auth
