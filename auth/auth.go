// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// isoMillis matches the browser's Date.toISOString output
const isoMillis = "2006-01-02T15:04:05.000Z"

// VoteRecord is the transient input to a fingerprint. It is never stored.
type VoteRecord struct {
	Voter     string
	Candidate string
	Timestamp time.Time
}

// Digest returns the hex SHA-256 of s
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Fingerprint digests the JSON form of a vote record.
// Display only; it proves nothing about the vote.
func Fingerprint(rec VoteRecord) string {
	payload, _ := json.Marshal(struct {
		Voter     string `json:"voter"`
		Candidate string `json:"candidate"`
		Timestamp string `json:"timestamp"`
	}{
		Voter:     rec.Voter,
		Candidate: rec.Candidate,
		Timestamp: rec.Timestamp.UTC().Format(isoMillis),
	})
	return Digest(string(payload))
}

// ShortFingerprint trims a fingerprint to the 10-character display form
func ShortFingerprint(fp string) string {
	if len(fp) <= 10 {
		return fp
	}
	return fp[:10] + "..."
}

// CheckOTP compares a submitted code against the expected one in constant time
func CheckOTP(code, expected string) bool {
	if expected == "" {
		return false
	}
	return hmac.Equal([]byte(strings.TrimSpace(code)), []byte(expected))
}

// NewSessionID returns a random identifier for a voter session
func NewSessionID() string {
	return uuid.NewString()
}

// MaskIdentity hides all but the last four characters, for logs
func MaskIdentity(identity string) string {
	if len(identity) <= 4 {
		return strings.Repeat("*", len(identity))
	}
	return strings.Repeat("*", len(identity)-4) + identity[len(identity)-4:]
}
