// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Persistence keys, as the browser demo named them
const (
	TallyKey    = "demoVotes"
	RegistryKey = "votersWhoVoted"
)

var (
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrAlreadyVoted     = errors.New("identity has already voted")
	ErrNoCandidates     = errors.New("at least one candidate is required")
)

// Snapshot is a consistent copy of the tally and the registry.
type Snapshot struct {
	Candidates []string
	Counts     map[string]int
	Voters     []string
}

// Count returns the votes for name, zero if it is not a candidate.
func (s Snapshot) Count(name string) int {
	return s.Counts[name]
}

// Store owns the TallyRecord and VoterRegistry. Commit is the only way counts
// grow; Reset is the only way they shrink. Both keys are written in a single
// KV call and swapped into memory under one lock, so readers never see one
// without the other.
type Store struct {
	kv         KV
	candidates []string

	mu     sync.RWMutex
	counts map[string]int
	voters []string
	voted  map[string]struct{}
}

// Open loads both structures from kv. Missing keys load as empty structures.
func Open(ctx context.Context, kv KV, candidates []string) (*Store, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	s := &Store{
		kv:         kv,
		candidates: slices.Clone(candidates),
	}
	s.clear()

	counts, err := s.loadCounts(ctx)
	if err != nil {
		return nil, err
	}
	voters, err := s.loadVoters(ctx)
	if err != nil {
		return nil, err
	}

	s.counts = counts
	for _, v := range voters {
		s.voted[v] = struct{}{}
	}
	s.voters = voters

	slog.Info("tally store loaded", "candidates", len(s.candidates), "voters", len(s.voters))
	return s, nil
}

func (s *Store) loadCounts(ctx context.Context) (map[string]int, error) {
	counts := s.zeroCounts()

	raw, ok, err := s.kv.Get(ctx, TallyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return counts, nil
	}

	var stored map[string]int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		slog.Warn("ignoring unreadable tally", "key", TallyKey, "error", err)
		return counts, nil
	}
	for name, n := range stored {
		if _, known := counts[name]; !known {
			slog.Warn("dropping votes for unconfigured candidate", "candidate", name, "count", n)
			continue
		}
		if n < 0 {
			slog.Warn("ignoring negative count", "candidate", name, "count", n)
			continue
		}
		counts[name] = n
	}
	return counts, nil
}

func (s *Store) loadVoters(ctx context.Context) ([]string, error) {
	raw, ok, err := s.kv.Get(ctx, RegistryKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		slog.Warn("ignoring unreadable voter registry", "key", RegistryKey, "error", err)
		return nil, nil
	}

	seen := make(map[string]struct{}, len(stored))
	voters := make([]string, 0, len(stored))
	for _, v := range stored {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		voters = append(voters, v)
	}
	return voters, nil
}

func (s *Store) zeroCounts() map[string]int {
	counts := make(map[string]int, len(s.candidates))
	for _, c := range s.candidates {
		counts[c] = 0
	}
	return counts
}

func (s *Store) clear() {
	s.counts = s.zeroCounts()
	s.voters = nil
	s.voted = make(map[string]struct{})
}

// Candidates returns the configured candidates in display order.
func (s *Store) Candidates() []string {
	return slices.Clone(s.candidates)
}

func (s *Store) IsCandidate(name string) bool {
	return slices.Contains(s.candidates, name)
}

func (s *Store) HasVoted(identity string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voted[identity]
	return ok
}

// VoterCount is the size of the registry.
func (s *Store) VoterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.voters)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	counts := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}
	return Snapshot{
		Candidates: slices.Clone(s.candidates),
		Counts:     counts,
		Voters:     slices.Clone(s.voters),
	}
}

// Commit adds one vote for candidate and records identity in the registry.
// Nothing changes, in memory or on disk, unless both writes persist.
func (s *Store) Commit(ctx context.Context, identity, candidate string) (Snapshot, error) {
	if !s.IsCandidate(candidate) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, candidate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.voted[identity]; ok {
		return Snapshot{}, ErrAlreadyVoted
	}

	counts := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}
	counts[candidate]++
	voters := append(slices.Clone(s.voters), identity)

	if err := s.persist(ctx, counts, voters); err != nil {
		return Snapshot{}, err
	}

	s.counts = counts
	s.voters = voters
	s.voted[identity] = struct{}{}

	return s.snapshotLocked(), nil
}

func (s *Store) persist(ctx context.Context, counts map[string]int, voters []string) error {
	tallyJSON, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to encode tally: %w", err)
	}
	if voters == nil {
		voters = []string{}
	}
	registryJSON, err := json.Marshal(voters)
	if err != nil {
		return fmt.Errorf("failed to encode voter registry: %w", err)
	}

	return s.kv.PutAll(ctx, map[string]string{
		TallyKey:    string(tallyJSON),
		RegistryKey: string(registryJSON),
	})
}

// Reset zeroes every count and empties the registry, removing both keys.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.DeleteAll(ctx, TallyKey, RegistryKey); err != nil {
		return err
	}
	s.clear()
	return nil
}
