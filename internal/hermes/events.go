package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
)

const (
	// SubjectConversationSubmitted carries conversations to parse asynchronously.
	SubjectConversationSubmitted = "chat2repo.conversation.submitted"
	// SubjectConversationParsed announces a stored parse result.
	SubjectConversationParsed = "chat2repo.conversation.parsed"
	// SubjectConversationFailed announces a submission that could not be parsed.
	SubjectConversationFailed = "chat2repo.conversation.failed"
	SubjectRegistered         = "chat2repo.agent.registered"
)

// Event sources.
const (
	SourceHTTP = "http"
	SourceNATS = "nats"
)

// SubmittedEvent asks for a conversation to be parsed. Conversation is left
// untyped so that non-string payloads are rejected by the parser rather than
// by JSON decoding.
type SubmittedEvent struct {
	SessionID    string `json:"session_id,omitempty"`
	Conversation any    `json:"conversation"`
}

// ParsedEvent is published after a parse result has been cached.
type ParsedEvent struct {
	SessionID string         `json:"session_id"`
	Source    string         `json:"source"`
	Summary   parser.Summary `json:"summary"`
	ParsedAt  time.Time      `json:"parsed_at"`
}

// FailedEvent is published when a submitted conversation is rejected.
type FailedEvent struct {
	SessionID string    `json:"session_id"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failed_at"`
}
