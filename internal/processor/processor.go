package processor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/chat2repo/internal/hermes"
	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
	"github.com/MikeSquared-Agency/chat2repo/internal/session"
)

// Publisher sends events to the bus.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor parses conversations submitted over NATS and caches the results
// under their session id, exactly like the HTTP parse endpoint.
type Processor struct {
	parser   *parser.Parser
	sessions *session.Cache
	events   Publisher
	logger   *slog.Logger
	now      func() time.Time
}

func New(p *parser.Parser, sessions *session.Cache, events Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		parser:   p,
		sessions: sessions,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleConversationSubmitted is the NATS handler for chat2repo.conversation.submitted.
func (p *Processor) HandleConversationSubmitted(subject string, data []byte) {
	var evt hermes.SubmittedEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse submission event", "subject", subject, "error", err)
		return
	}

	sessionID := evt.SessionID
	if sessionID == "" {
		sessionID = session.NewID()
	}

	result, err := p.parser.ParseValue(evt.Conversation)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, parser.ErrInvalidInput) {
			level = slog.LevelWarn
		}
		p.logger.Log(context.Background(), level, "conversation rejected", "session_id", sessionID, "error", err)
		p.publish(hermes.SubjectConversationFailed, hermes.FailedEvent{
			SessionID: sessionID,
			Error:     err.Error(),
			FailedAt:  p.now().UTC(),
		})
		return
	}

	conversation, _ := evt.Conversation.(string)
	p.sessions.Put(sessionID, result, conversation)

	p.logger.Info("conversation processed",
		"session_id", sessionID,
		"artifacts", len(result.Artifacts),
		"code_blocks", len(result.CodeBlocks),
	)

	p.publish(hermes.SubjectConversationParsed, hermes.ParsedEvent{
		SessionID: sessionID,
		Source:    hermes.SourceNATS,
		Summary:   result.Metadata.Summary(),
		ParsedAt:  p.now().UTC(),
	})
}

func (p *Processor) publish(subject string, data any) {
	if err := p.events.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
