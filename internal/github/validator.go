// Package github checks user-supplied GitHub credentials against the GitHub API.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// ErrAuthFailed matches every AuthError.
var ErrAuthFailed = errors.New("github authentication failed")

// AuthError is returned when GitHub rejects the token or cannot be reached.
// Message is GitHub's own explanation when one was given.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return ErrAuthFailed.Error() + ": " + e.Message
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthFailed
}

// Profile is the subset of the authenticated user returned to callers.
type Profile struct {
	Login        string `json:"login"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PublicRepos  int    `json:"public_repos"`
	PrivateRepos int64  `json:"private_repos"`
	AvatarURL    string `json:"avatar_url"`
}

type Validator struct {
	baseURL string // empty means api.github.com
	logger  *slog.Logger
}

func NewValidator(baseURL string, logger *slog.Logger) *Validator {
	return &Validator{baseURL: baseURL, logger: logger}
}

// Validate fetches the profile of the user owning token.
func (v *Validator) Validate(ctx context.Context, token, username string) (*Profile, error) {
	client, err := v.newClient(ctx, token)
	if err != nil {
		return nil, err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, &AuthError{Message: upstreamMessage(err)}
	}

	if username != "" && !strings.EqualFold(user.GetLogin(), username) {
		v.logger.Warn("github token belongs to a different user",
			"username", username,
			"login", user.GetLogin(),
		)
	}

	return &Profile{
		Login:        user.GetLogin(),
		Name:         user.GetName(),
		Email:        user.GetEmail(),
		PublicRepos:  int(user.GetPublicRepos()),
		PrivateRepos: int64(user.GetTotalPrivateRepos()),
		AvatarURL:    user.GetAvatarURL(),
	}, nil
}

func (v *Validator) newClient(ctx context.Context, token string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(ctx, ts))

	if v.baseURL != "" {
		base := v.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
		client.BaseURL = u
	}
	return client, nil
}

func upstreamMessage(err error) string {
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	return err.Error()
}
