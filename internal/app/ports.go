// Package app declares the use cases the outer surfaces (HTTP, MCP, CLI)
// depend on, so they can be tested against fakes.
package app

import (
	"context"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/netgate"
)

// ChatUseCase answers one query in the context of a session.
type ChatUseCase interface {
	Respond(ctx context.Context, sessionID, query string) domain.Response
}

// GreetUseCase produces the opening message.
type GreetUseCase interface {
	Greet() string
}

// SessionUseCase manages conversation lifecycles.
type SessionUseCase interface {
	Farewell(sessionID string) string
	Reset(sessionID string)
	History(sessionID string) []domain.Turn
}

// Assistant is everything a user-facing surface needs.
type Assistant interface {
	ChatUseCase
	GreetUseCase
	SessionUseCase
}

// NetworkStatusUseCase reports reachability of the AI backend.
type NetworkStatusUseCase interface {
	Probe(ctx context.Context) netgate.Status
}
