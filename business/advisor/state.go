package advisor

import "context"

// DefaultSession is used when a caller does not identify its session.
const DefaultSession = "default"

// StateRepository holds the adjustment counter per session.
type StateRepository interface {
	Current(ctx context.Context, session string) (int, error)
	// Advance atomically increments the counter up to ceiling and returns the value before the increment.
	// The counter never decreases.
	Advance(ctx context.Context, session string, ceiling int) (int, error)
}

func normalizeSession(session string) string {
	if session == "" {
		return DefaultSession
	}
	return session
}
