package sessions

import (
	"context"

	"github.com/Maazpendari01/InterviewQi/internal/interview"
)

// Store keeps live interview state between turns. Load returns
// interview.ErrSessionNotFound for unknown or expired sessions.
type Store interface {
	Save(ctx context.Context, state *interview.State) error
	Load(ctx context.Context, sessionID string) (*interview.State, error)
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
