// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/mock-ballot/auth"
	"github.com/danielhkuo/mock-ballot/cliparse"
	"github.com/danielhkuo/mock-ballot/models"
	"github.com/danielhkuo/mock-ballot/results"
	"github.com/danielhkuo/mock-ballot/tally"
)

// IdentityLength is the number of digits in a mock VIN
const IdentityLength = 10

// transitions lists the forward moves; Reset may go to Registering from anywhere.
var transitions = map[models.Stage][]models.Stage{
	models.StageRegistering:    {models.StageAwaitingOTP},
	models.StageAwaitingOTP:    {models.StageVoting},
	models.StageVoting:         {models.StageShowingResults},
	models.StageShowingResults: {models.StageRegistering},
}

type Opt func(*Session)

// WithView sets the view notified of stage changes, messages and results.
func WithView(v View) Opt {
	return func(s *Session) {
		s.view = v
	}
}

// WithClock replaces the wall clock used for the commit delay and timestamps.
func WithClock(c clockwork.Clock) Opt {
	return func(s *Session) {
		s.clock = c
	}
}

// State is what the view needs to decide which step to draw.
type State struct {
	SessionID string
	Stage     models.Stage
	// VoterID is the verified identity, set only while voting.
	VoterID string
	// Message is the latest notice sent to the view, nil before the first.
	Message *models.Message
}

// Receipt describes a committed vote. It deliberately omits the voter.
type Receipt struct {
	Candidate   string
	Fingerprint string
	CastAt      time.Time
	Message     models.Message
	Results     models.Results
}

// Session is the voter wizard: Registering → AwaitingOTP → Voting →
// ShowingResults, with Reset returning to Registering from any stage.
// It is the only writer to the tally store.
type Session struct {
	id          string
	store       *tally.Store
	expectedOTP string
	view        View
	clock       clockwork.Clock
	commit      *pipeline

	mu         sync.Mutex
	stage      models.Stage
	pending    string
	generation uint64
	message    *models.Message
}

// New starts a session over store. If someone has already voted and nobody is
// mid-registration, the session resumes on the results view.
func New(store *tally.Store, cfg cliparse.Config, opts ...Opt) *Session {
	s := &Session{
		id:          auth.NewSessionID(),
		store:       store,
		expectedOTP: cfg.ExpectedOTP,
		view:        nopView{},
		clock:       clockwork.NewRealClock(),
		stage:       models.StageRegistering,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.commit = newPipeline(s.clock, cfg.CommitDelay)

	if store.VoterCount() > 0 {
		s.stage = models.StageShowingResults
	}

	s.mu.Lock()
	s.view.RenderResults(results.Project(store.Snapshot()))
	s.view.ShowStage(s.stage)
	s.mu.Unlock()

	slog.Info("session started", "session_id", s.id, "stage", s.stage)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{SessionID: s.id, Stage: s.stage}
	if s.stage == models.StageVoting {
		st.VoterID = s.pending
	}
	if s.message != nil {
		msg := *s.message
		st.Message = &msg
	}
	return st
}

// Candidates returns the ballot in display order.
func (s *Session) Candidates() []string {
	return s.store.Candidates()
}

// Results projects the latest committed tally. Safe in any stage.
func (s *Session) Results() models.Results {
	return results.Project(s.store.Snapshot())
}

// Progress reports the encryption animation for the vote in flight, if any.
func (s *Session) Progress() models.ProgressResponse {
	return s.commit.progress()
}

// ValidIdentity reports whether identity is exactly ten decimal digits.
func ValidIdentity(identity string) bool {
	if len(identity) != IdentityLength {
		return false
	}
	for i := 0; i < len(identity); i++ {
		if identity[i] < '0' || identity[i] > '9' {
			return false
		}
	}
	return true
}

// SubmitIdentity registers a mock VIN and asks for the OTP.
// Surrounding whitespace is trimmed first, so "1234567890\n" is accepted.
func (s *Session) SubmitIdentity(identity string) error {
	identity = strings.TrimSpace(identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStage(models.StageRegistering); err != nil {
		return err
	}
	if !ValidIdentity(identity) {
		return s.fail(newError(ErrValidation, models.SeverityDanger,
			"Please enter a valid 10-digit Mock VIN."))
	}
	if s.store.HasVoted(identity) {
		slog.Info("duplicate registration rejected", "session_id", s.id, "voter", auth.MaskIdentity(identity))
		return s.fail(newError(ErrDuplicateVoter, models.SeverityWarning,
			fmt.Sprintf("Voter %s has already voted. Please use a different VIN or reset the demo.", identity)))
	}

	s.pending = identity
	s.notify(models.SeverityInfo, "OTP requested. Please check your mock phone.")
	s.transition(models.StageAwaitingOTP)
	return nil
}

// SubmitOTP verifies the code and returns the now active voter id.
// A wrong code leaves the session waiting for another attempt.
func (s *Session) SubmitOTP(code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStage(models.StageAwaitingOTP); err != nil {
		return "", err
	}
	if !auth.CheckOTP(code, s.expectedOTP) {
		return "", s.fail(newError(ErrOTPMismatch, models.SeverityDanger,
			"Invalid OTP. Please try again."))
	}

	s.notify(models.SeveritySuccess, "OTP Verified! Proceed to vote.")
	s.transition(models.StageVoting)
	slog.Info("voter verified", "session_id", s.id, "voter", auth.MaskIdentity(s.pending))
	return s.pending, nil
}

// CastVote records a vote for candidate after the simulated encryption delay.
// The delay does not hold the session lock, so Reset and reads proceed while
// it runs. Only one vote may be in flight at a time.
func (s *Session) CastVote(ctx context.Context, candidate string) (Receipt, error) {
	candidate = strings.TrimSpace(candidate)
	identity, gen, err := s.prepareVote(candidate)
	if err != nil {
		return Receipt{}, err
	}
	defer s.commit.end()

	slog.Info("vote commit started", "session_id", s.id, "delay", s.commit.delay)
	s.commit.wait()

	return s.finishVote(context.WithoutCancel(ctx), gen, identity, candidate)
}

func (s *Session) prepareVote(candidate string) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStage(models.StageVoting); err != nil {
		return "", 0, err
	}
	if s.pending == "" {
		return "", 0, s.fail(newError(ErrSession, models.SeverityDanger,
			"No verified voter for this session. Please reset and register again."))
	}
	if candidate == "" {
		return "", 0, s.fail(newError(ErrSelection, models.SeverityWarning,
			"Please select a candidate."))
	}
	if !s.store.IsCandidate(candidate) {
		return "", 0, s.fail(newError(ErrValidation, models.SeverityDanger,
			fmt.Sprintf("%s is not on the ballot.", candidate)))
	}
	if !s.commit.begin() {
		return "", 0, s.fail(newError(ErrCommitInProgress, models.SeverityWarning,
			"Your vote is already being encrypted. Please wait."))
	}
	return s.pending, s.generation, nil
}

func (s *Session) finishVote(ctx context.Context, gen uint64, identity, candidate string) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.stage != models.StageVoting || s.pending != identity {
		slog.Warn("discarding vote after reset", "session_id", s.id, "generation", gen, "current", s.generation)
		return Receipt{}, s.fail(newError(ErrStaleCommit, models.SeverityWarning,
			"The demo was reset before your vote was recorded. Please register again."))
	}

	snap, err := s.store.Commit(ctx, identity, candidate)
	switch {
	case errors.Is(err, tally.ErrAlreadyVoted):
		return Receipt{}, s.fail(newError(ErrDuplicateVoter, models.SeverityWarning,
			fmt.Sprintf("Voter %s has already voted. Please use a different VIN or reset the demo.", identity)))
	case errors.Is(err, tally.ErrUnknownCandidate):
		return Receipt{}, s.fail(newError(ErrValidation, models.SeverityDanger,
			fmt.Sprintf("%s is not on the ballot.", candidate)))
	case err != nil:
		slog.Error("failed to commit vote", "session_id", s.id, "error", err)
		e := newError(ErrStorage, models.SeverityDanger, "Your vote could not be saved. Please try again.")
		e.Err = err
		return Receipt{}, s.fail(e)
	}

	castAt := s.clock.Now()
	fp := auth.Fingerprint(auth.VoteRecord{Voter: identity, Candidate: candidate, Timestamp: castAt})
	r := results.Project(snap)

	msg := models.Message{
		Severity: models.SeveritySuccess,
		Text:     fmt.Sprintf("Vote for %s cast successfully! (Mock Hash: %s)", candidate, auth.ShortFingerprint(fp)),
	}

	s.pending = ""
	s.send(msg)
	s.view.RenderResults(r)
	s.transition(models.StageShowingResults)

	slog.Info("vote committed", "session_id", s.id, "candidate", candidate, "total", r.Total)
	return Receipt{
		Candidate:   candidate,
		Fingerprint: fp,
		CastAt:      castAt,
		Message:     msg,
		Results:     r,
	}, nil
}

// NextVoter leaves the results view for a fresh registration, keeping the tally.
func (s *Session) NextVoter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStage(models.StageShowingResults); err != nil {
		return err
	}
	s.notify(models.SeverityInfo, "Ready for the next voter.")
	s.transition(models.StageRegistering)
	return nil
}

// Reset zeroes the tally, empties the registry and returns to Registering.
// A vote still in its delay when Reset runs is discarded.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		slog.Error("failed to reset tally", "session_id", s.id, "error", err)
		e := newError(ErrStorage, models.SeverityDanger, "The demo could not be reset. Please try again.")
		e.Err = err
		return s.fail(e)
	}

	s.generation++
	s.pending = ""
	s.stage = models.StageRegistering

	s.notify(models.SeverityInfo, "Demo has been reset. You can register and vote again.")
	s.view.RenderResults(results.Project(s.store.Snapshot()))
	s.view.ShowStage(s.stage)

	slog.Info("demo reset", "session_id", s.id, "generation", s.generation)
	return nil
}

func (s *Session) requireStage(want models.Stage) error {
	if s.stage == want {
		return nil
	}
	e := newError(ErrWrongStage, models.SeverityWarning, "That step is not available right now.")
	e.Err = fmt.Errorf("stage is %s, need %s", s.stage, want)
	return s.fail(e)
}

func (s *Session) transition(to models.Stage) {
	for _, next := range transitions[s.stage] {
		if next == to {
			s.stage = to
			s.view.ShowStage(to)
			return
		}
	}
	panic(fmt.Sprintf("no transition from %s to %s", s.stage, to))
}

func (s *Session) notify(severity models.Severity, text string) {
	s.send(models.Message{Severity: severity, Text: text})
}

func (s *Session) fail(e *Error) *Error {
	s.send(e.Message)
	return e
}

func (s *Session) send(msg models.Message) {
	s.message = &msg
	s.view.Notify(msg)
}
