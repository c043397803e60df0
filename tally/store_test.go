// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/mock-ballot/testutil"
)

var candidates = []string{"Candidate A", "Candidate B", "Candidate C"}

func openTestStore(t *testing.T) (*Store, *SQLKV) {
	t.Helper()
	kv := NewSQLKV(testutil.SetupTestDB(t))
	s, err := Open(context.Background(), kv, candidates)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, kv
}

func TestOpenEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	snap := s.Snapshot()
	want := map[string]int{"Candidate A": 0, "Candidate B": 0, "Candidate C": 0}
	if diff := cmp.Diff(want, snap.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Voters) != 0 {
		t.Errorf("expected empty registry, got %v", snap.Voters)
	}
}

func TestOpenNoCandidates(t *testing.T) {
	kv := NewSQLKV(testutil.SetupTestDB(t))
	if _, err := Open(context.Background(), kv, nil); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Open() error = %v, want %v", err, ErrNoCandidates)
	}
}

func TestCommit(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	snap, err := s.Commit(ctx, testutil.TestVIN, "Candidate B")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	want := map[string]int{"Candidate A": 0, "Candidate B": 1, "Candidate C": 0}
	if diff := cmp.Diff(want, snap.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{testutil.TestVIN}, snap.Voters); diff != "" {
		t.Errorf("voters mismatch (-want +got):\n%s", diff)
	}
	if !s.HasVoted(testutil.TestVIN) {
		t.Error("HasVoted() = false after commit")
	}
}

func TestCommitRejects(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if _, err := s.Commit(ctx, testutil.TestVIN, "Candidate Z"); !errors.Is(err, ErrUnknownCandidate) {
		t.Errorf("Commit() unknown candidate error = %v", err)
	}
	if s.VoterCount() != 0 {
		t.Error("rejected commit changed the registry")
	}

	if _, err := s.Commit(ctx, testutil.TestVIN, "Candidate A"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	before := s.Snapshot()
	for i := 0; i < 3; i++ {
		if _, err := s.Commit(ctx, testutil.TestVIN, "Candidate C"); !errors.Is(err, ErrAlreadyVoted) {
			t.Errorf("Commit() repeat %d error = %v, want %v", i, err, ErrAlreadyVoted)
		}
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("duplicate commit changed state (-before +after):\n%s", diff)
	}
}

func TestCommitPersists(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	kv := NewSQLKV(conn)

	s, err := Open(ctx, kv, candidates)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Commit(ctx, "1111111111", "Candidate A"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Commit(ctx, "2222222222", "Candidate C"); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ReadKV(t, conn, TallyKey); got != `{"Candidate A":1,"Candidate B":0,"Candidate C":1}` {
		t.Errorf("stored tally = %s", got)
	}
	if got := testutil.ReadKV(t, conn, RegistryKey); got != `["1111111111","2222222222"]` {
		t.Errorf("stored registry = %s", got)
	}

	reopened, err := Open(ctx, kv, candidates)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.Snapshot(), reopened.Snapshot()); diff != "" {
		t.Errorf("reopened store differs (-want +got):\n%s", diff)
	}
}

func TestOpenTolerantLoad(t *testing.T) {
	tests := []struct {
		name       string
		tally      string
		registry   string
		wantCounts map[string]int
		wantVoters []string
	}{
		{
			name:       "corrupt tally",
			tally:      `{not json`,
			registry:   `["1234567890"]`,
			wantCounts: map[string]int{"Candidate A": 0, "Candidate B": 0, "Candidate C": 0},
			wantVoters: []string{"1234567890"},
		},
		{
			name:       "unknown candidate dropped",
			tally:      `{"Candidate A":2,"Write-in":5}`,
			registry:   `[]`,
			wantCounts: map[string]int{"Candidate A": 2, "Candidate B": 0, "Candidate C": 0},
			wantVoters: []string{},
		},
		{
			name:       "duplicate voters collapsed",
			tally:      `{"Candidate B":2}`,
			registry:   `["1234567890","1234567890","0987654321"]`,
			wantCounts: map[string]int{"Candidate A": 0, "Candidate B": 2, "Candidate C": 0},
			wantVoters: []string{"1234567890", "0987654321"},
		},
		{
			name:       "corrupt registry",
			tally:      `{"Candidate C":1}`,
			registry:   `"oops"`,
			wantCounts: map[string]int{"Candidate A": 0, "Candidate B": 0, "Candidate C": 1},
			wantVoters: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := testutil.SetupTestDB(t)
			testutil.SeedKV(t, conn, TallyKey, tt.tally)
			testutil.SeedKV(t, conn, RegistryKey, tt.registry)

			s, err := Open(context.Background(), NewSQLKV(conn), candidates)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			snap := s.Snapshot()
			if diff := cmp.Diff(tt.wantCounts, snap.Counts); diff != "" {
				t.Errorf("counts mismatch (-want +got):\n%s", diff)
			}
			if len(tt.wantVoters) == 0 {
				if len(snap.Voters) != 0 {
					t.Errorf("expected no voters, got %v", snap.Voters)
				}
			} else if diff := cmp.Diff(tt.wantVoters, snap.Voters); diff != "" {
				t.Errorf("voters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	s, err := Open(ctx, NewSQLKV(conn), candidates)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Commit(ctx, testutil.TestVIN, "Candidate B"); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	snap := s.Snapshot()
	for _, c := range candidates {
		if snap.Count(c) != 0 {
			t.Errorf("count for %s = %d after reset", c, snap.Count(c))
		}
	}
	if s.VoterCount() != 0 || s.HasVoted(testutil.TestVIN) {
		t.Error("registry not empty after reset")
	}
	if got := testutil.ReadKV(t, conn, TallyKey); got != "" {
		t.Errorf("tally key still stored: %s", got)
	}
	if got := testutil.ReadKV(t, conn, RegistryKey); got != "" {
		t.Errorf("registry key still stored: %s", got)
	}

	// the same identity may vote again after a reset
	if _, err := s.Commit(ctx, testutil.TestVIN, "Candidate A"); err != nil {
		t.Errorf("Commit() after reset error = %v", err)
	}
}

type failingKV struct {
	KV
	err error
}

func (f failingKV) PutAll(context.Context, map[string]string) error { return f.err }
func (f failingKV) DeleteAll(context.Context, ...string) error      { return f.err }

func TestStorageFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, kv := openTestStore(t)
	if _, err := s.Commit(ctx, "1111111111", "Candidate A"); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()

	boom := errors.New("disk full")
	s.kv = failingKV{KV: kv, err: boom}

	if _, err := s.Commit(ctx, "2222222222", "Candidate B"); !errors.Is(err, boom) {
		t.Errorf("Commit() error = %v, want %v", err, boom)
	}
	if err := s.Reset(ctx); !errors.Is(err, boom) {
		t.Errorf("Reset() error = %v, want %v", err, boom)
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("failed writes changed state (-before +after):\n%s", diff)
	}
}
