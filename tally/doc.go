// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally holds the vote counts and the voter registry.

# Storage

Both live as JSON under two keys of a key-value table:

	demoVotes      {"Candidate A":3,"Candidate B":1,"Candidate C":0}
	votersWhoVoted ["1234567890","0987654321"]

SQLKV implements KV over the db package's kv table:

	store, err := tally.Open(ctx, tally.NewSQLKV(conn), cfg.Candidates)

# Loading

Open tolerates bad data. Corrupt JSON loads as empty, counts for names not on
the ballot and negative counts are dropped, and duplicate registry entries
collapse. Each case is logged as a warning.

# Writes

Commit writes both keys in one transaction and swaps memory only after it
succeeds. Reset deletes both keys.
*/
package tally
