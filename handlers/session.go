// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mock-ballot/middleware"
	"github.com/danielhkuo/mock-ballot/models"
	"github.com/danielhkuo/mock-ballot/session"
)

type SessionHandler struct {
	session *session.Session
	feed    *Feed
}

func NewSessionHandler(s *session.Session, feed *Feed) *SessionHandler {
	return &SessionHandler{session: s, feed: feed}
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.sessionResponse())
}

// SubmitIdentity handles POST /session/identity
func (h *SessionHandler) SubmitIdentity(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitIdentityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.session.SubmitIdentity(req.Identity); err != nil {
		h.fail(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.sessionResponse())
}

// SubmitOTP handles POST /session/otp
func (h *SessionHandler) SubmitOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if _, err := h.session.SubmitOTP(req.Code); err != nil {
		h.fail(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.sessionResponse())
}

// CastVote handles POST /session/vote
// Blocks for the encryption delay; poll GET /session/progress meanwhile.
func (h *SessionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	receipt, err := h.session.CastVote(r.Context(), req.Candidate)
	if err != nil {
		h.fail(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Stage:       h.session.State().Stage,
		Fingerprint: receipt.Fingerprint,
		Message:     receipt.Message,
		Results:     receipt.Results,
	})
}

// GetProgress handles GET /session/progress
func (h *SessionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.session.Progress())
}

// NextVoter handles POST /session/next
func (h *SessionHandler) NextVoter(w http.ResponseWriter, r *http.Request) {
	if err := h.session.NextVoter(); err != nil {
		h.fail(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.sessionResponse())
}

// Reset handles POST /reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Reset(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.sessionResponse())
}

func (h *SessionHandler) sessionResponse() models.SessionResponse {
	st := h.session.State()
	resp := models.SessionResponse{
		SessionID:  st.SessionID,
		Stage:      st.Stage,
		VoterID:    st.VoterID,
		Candidates: h.session.Candidates(),
		Message:    st.Message,
	}
	if st.Stage == models.StageShowingResults {
		res := h.feed.Results()
		resp.Results = &res
	}
	return resp
}

func (h *SessionHandler) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("session operation failed", "session_id", h.session.ID(), "error", err)
	}
	middleware.MessageResponse(w, status, session.MessageFor(err), h.session.State().Stage)
}

// StatusFor maps a session error to an HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrOTPMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrDuplicateVoter),
		errors.Is(err, session.ErrWrongStage),
		errors.Is(err, session.ErrCommitInProgress):
		return http.StatusConflict
	case errors.Is(err, session.ErrSession):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
