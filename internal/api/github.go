package api

import (
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/chat2repo/internal/github"
)

const minTokenLen = 10

type ValidateGitHubRequest struct {
	Token    any `json:"token"`
	Username any `json:"username"`
}

type ValidateGitHubResponse struct {
	Success bool            `json:"success"`
	User    *github.Profile `json:"user"`
}

// validateGitHub handles POST /api/validate-github
func (s *Server) validateGitHub(w http.ResponseWriter, r *http.Request) {
	var req ValidateGitHubRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []fieldError
	token, ok := req.Token.(string)
	if !ok || len(token) < minTokenLen {
		errs = append(errs, fieldError{Field: "token", Message: "GitHub token is required"})
	}
	username, ok := req.Username.(string)
	if !ok || username == "" {
		errs = append(errs, fieldError{Field: "username", Message: "GitHub username is required"})
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: errs})
		return
	}

	s.logger.Info("validating github credentials", "username", username)

	profile, err := s.validator.Validate(r.Context(), token, username)
	if err != nil {
		s.logger.Warn("github validation failed", "username", username, "error", err)
		msg := err.Error()
		var authErr *github.AuthError
		if errors.As(err, &authErr) {
			msg = authErr.Message
		}
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "GitHub authentication failed",
			Message: msg,
		})
		return
	}

	writeJSON(w, http.StatusOK, ValidateGitHubResponse{Success: true, User: profile})
}
