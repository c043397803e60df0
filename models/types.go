package models

// Session stages
type Stage string

const (
	StageRegistering    Stage = "registering"
	StageAwaitingOTP    Stage = "awaiting_otp"
	StageVoting         Stage = "voting"
	StageShowingResults Stage = "showing_results"
)

// Message severities, named after the view's alert styles
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Chart types the view knows how to draw
const (
	ChartPie = "pie"
	ChartBar = "bar"
)

// Message is a user-facing notice tagged with a severity
type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Results is the display-ready projection of the tally.
// Labels and Counts are parallel and follow the configured candidate order.
type Results struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
	Total  int      `json:"total"`
}

// Request types

type SubmitIdentityRequest struct {
	Identity string `json:"identity"`
}

type SubmitOTPRequest struct {
	Code string `json:"code"`
}

type CastVoteRequest struct {
	Candidate string `json:"candidate"`
}

// Response types

type SessionResponse struct {
	SessionID  string   `json:"session_id"`
	Stage      Stage    `json:"stage"`
	VoterID    string   `json:"voter_id,omitempty"`
	Candidates []string `json:"candidates"`
	Message    *Message `json:"message,omitempty"`
	Results    *Results `json:"results,omitempty"`
}

type CastVoteResponse struct {
	Stage       Stage   `json:"stage"`
	Fingerprint string  `json:"fingerprint"`
	Message     Message `json:"message"`
	Results     Results `json:"results"`
}

type ProgressResponse struct {
	InFlight bool   `json:"in_flight"`
	Percent  int    `json:"percent"`
	Dots     string `json:"dots"`
}

type ResultsResponse struct {
	Results
	Leaders []string `json:"leaders"`
	Summary string   `json:"summary"`
	Chart   string   `json:"chart"`
}

// Error response

type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Stage    Stage    `json:"stage,omitempty"`
}
