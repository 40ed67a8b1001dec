// Package llm abstracts the text-completion service behind a small interface
// so the dialogue stays testable with scripted replies.
package llm

import (
	"context"
	"fmt"

	"comanda/internal/models"
)

// Provider is the completion collaborator. Calls are synchronous and
// blocking; the dialogue waits for the reply and failures surface to the
// caller unretried.
type Provider interface {
	Complete(ctx context.Context, systemPrompt string, turns []models.ConversationTurn) (string, error)
}

// Scripted is a Provider returning pre-recorded replies in order. It records
// what it was asked, for assertions.
type Scripted struct {
	Replies []string
	Err     error

	Calls   int
	Prompts []string
}

// Complete returns the next scripted reply.
func (s *Scripted) Complete(_ context.Context, systemPrompt string, _ []models.ConversationTurn) (string, error) {
	s.Calls++
	s.Prompts = append(s.Prompts, systemPrompt)
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Replies) == 0 {
		return "", fmt.Errorf("scripted provider has no replies left")
	}
	reply := s.Replies[0]
	s.Replies = s.Replies[1:]
	return reply, nil
}
