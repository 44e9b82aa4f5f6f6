package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flashmentor-network/flashmentor/internal/app/coordinator"
	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// ─── Help Request ───────────────────────────────────────────────────────────
// Business rejections (insufficient funds, no expert) are HTTP 200
// with success=false: they are routine outcomes of a well-formed
// request, not protocol errors. The reason field is the machine
// contract; message is display text and may change.

// Rejection reason kinds.
const (
	reasonInsufficientFunds = "insufficient_funds"
	reasonNoExpert          = "no_expert_available"
)

type helpRequest struct {
	UserID  string `json:"userId"`
	Topic   string `json:"topic"`
	Context string `json:"context"`
}

type helpResponse struct {
	Success          bool                  `json:"success"`
	Mentor           *domain.ExpertProfile `json:"mentor,omitempty"`
	SessionID        int64                 `json:"sessionId,omitempty"`
	RemainingBalance *int64                `json:"remainingBalance,omitempty"`
	Reason           string                `json:"reason,omitempty"`
	Message          string                `json:"message,omitempty"`
}

// handleRequestHelp runs the match-and-debit decision.
// POST /api/request-help
func (s *Server) handleRequestHelp(w http.ResponseWriter, r *http.Request) {
	var req helpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	sess, err := s.coord.RequestHelp(r.Context(), req.UserID, req.Topic, req.Context)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, helpResponse{
			Success:          true,
			Mentor:           &sess.Expert,
			SessionID:        sess.ID,
			RemainingBalance: &sess.RemainingBalance,
		})
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeJSON(w, http.StatusOK, helpResponse{
			Success: false,
			Reason:  reasonInsufficientFunds,
			Message: "insufficient funds — become a mentor to earn minutes",
		})
	case errors.Is(err, domain.ErrNoExpertAvailable):
		writeJSON(w, http.StatusOK, helpResponse{
			Success: false,
			Reason:  reasonNoExpert,
			Message: "no expert available for this topic",
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ─── Sessions ───────────────────────────────────────────────────────────────

// handleListSessions returns live session handles.
// GET /api/sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": s.coord.ActiveSessions(),
	})
}

// handleCompleteSession retires a session, credits the mentor, and
// folds an optional rating into the mentor's response score.
// POST /api/sessions/{id}/complete
func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "session id must be an integer")
		return
	}

	var body struct {
		Rating *float64 `json:"rating"`
	}
	// An empty body means "no rating".
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.coord.CompleteSession(r.Context(), id, coordinator.Completion{Rating: body.Rating})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"mentorBalance": res.MentorBalance,
			"responseScore": res.ResponseScore,
		})
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ─── Accounts ───────────────────────────────────────────────────────────────

// handleAccountBalance returns the balance, lazily seeding the account.
// GET /api/accounts/{id}
func (s *Server) handleAccountBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	balance, err := s.ledger.Balance(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"balance": balance,
	})
}

// handleAccountHistory returns the account's transaction log.
// GET /api/accounts/{id}/history
func (s *Server) handleAccountHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := s.ledger.History(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []domain.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"history": history,
	})
}

// ─── Experts ────────────────────────────────────────────────────────────────

// handleListExperts returns the directory roster.
// GET /api/experts
func (s *Server) handleListExperts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"experts": s.dir.List(),
	})
}

// handleUpsertExpert registers or replaces an expert profile.
// POST /api/experts
func (s *Server) handleUpsertExpert(w http.ResponseWriter, r *http.Request) {
	var profile domain.ExpertProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if profile.ID == "" {
		writeError(w, http.StatusBadRequest, "expert id is required")
		return
	}

	s.dir.Upsert(profile)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// handleSetAvailability flips an expert online or offline.
// POST /api/experts/{id}/availability
func (s *Server) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.dir.SetAvailability(id, body.Available); err != nil {
		if errors.Is(err, domain.ErrExpertNotFound) {
			writeError(w, http.StatusNotFound, "expert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
