package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/chat2repo/internal/hermes"
	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
	"github.com/MikeSquared-Agency/chat2repo/internal/session"
)

// ParseRequest is the body of POST /api/parse-conversation. Fields are
// untyped so that wrong JSON types surface as validation errors.
type ParseRequest struct {
	Conversation any `json:"conversation"`
	SessionID    any `json:"sessionId,omitempty"`
}

type ParseResponse struct {
	Success   bool                `json:"success"`
	SessionID string              `json:"sessionId"`
	Data      *parser.ParseResult `json:"data"`
	Summary   parser.Summary      `json:"summary"`
}

type ParsedDataResponse struct {
	Success   bool                `json:"success"`
	Data      *parser.ParseResult `json:"data"`
	Timestamp int64               `json:"timestamp"` // unix millis
}

// parseConversation handles POST /api/parse-conversation
func (s *Server) parseConversation(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	conversation, sessionID, errs := s.validateParseRequest(req)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: errs})
		return
	}
	if sessionID == "" {
		sessionID = session.NewID()
	}

	s.logger.Info("parsing conversation", "session_id", sessionID, "length", len(conversation))

	result, err := s.parser.Parse(conversation)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, parser.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.logger.Error("parse conversation failed", "session_id", sessionID, "error", err)
		writeJSON(w, status, errorResponse{
			Error:   "Failed to parse conversation",
			Message: err.Error(),
		})
		return
	}

	s.sessions.Put(sessionID, result, conversation)
	s.logger.Info("parsing completed",
		"session_id", sessionID,
		"total_artifacts", result.Metadata.TotalArtifacts,
	)

	if s.events != nil {
		if err := s.events.Publish(hermes.SubjectConversationParsed, hermes.ParsedEvent{
			SessionID: sessionID,
			Source:    hermes.SourceHTTP,
			Summary:   result.Metadata.Summary(),
			ParsedAt:  time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("failed to publish parsed event", "session_id", sessionID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Success:   true,
		SessionID: sessionID,
		Data:      result,
		Summary:   result.Metadata.Summary(),
	})
}

func (s *Server) validateParseRequest(req ParseRequest) (string, string, []fieldError) {
	var errs []fieldError

	conversation, ok := req.Conversation.(string)
	if !ok || utf8.RuneCountInString(conversation) < s.cfg.MinConversationLen {
		errs = append(errs, fieldError{
			Field:   "conversation",
			Message: fmt.Sprintf("Conversation must be at least %d characters", s.cfg.MinConversationLen),
		})
	}

	var sessionID string
	if req.SessionID != nil {
		id, ok := req.SessionID.(string)
		if !ok {
			errs = append(errs, fieldError{Field: "sessionId", Message: "sessionId must be a string"})
		}
		sessionID = id
	}

	return conversation, sessionID, errs
}

// parsedData handles GET /api/parsed-data/{sessionID}
func (s *Server) parsedData(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	entry, err := s.sessions.Get(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found or expired")
		return
	}
	if err != nil {
		s.logger.Error("get parsed data failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve parsed data")
		return
	}

	writeJSON(w, http.StatusOK, ParsedDataResponse{
		Success:   true,
		Data:      entry.Result,
		Timestamp: entry.StoredAt.UnixMilli(),
	})
}
