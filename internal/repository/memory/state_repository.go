package memory

import (
	"container/list"
	"context"
	"smelterAdvisor/business/advisor"
	"sync"
)

const defaultMaxSessions = 10000

type sessionState struct {
	id    string
	count int
}

// StateRepository holds adjustment counters in process memory; they reset on restart.
// At most maxSessions counters are kept. Sessions are ordered by their last Advance and the
// least recently advanced one is evicted first.
type StateRepository struct {
	mu          sync.Mutex
	sessions    map[string]*list.Element
	recency     *list.List // front = most recently advanced
	maxSessions int
}

var _ advisor.StateRepository = (*StateRepository)(nil)

func NewStateRepository() *StateRepository {
	return NewStateRepositoryWithCap(defaultMaxSessions)
}

func NewStateRepositoryWithCap(maxSessions int) *StateRepository {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &StateRepository{
		sessions:    make(map[string]*list.Element),
		recency:     list.New(),
		maxSessions: maxSessions,
	}
}

func (r *StateRepository) Current(ctx context.Context, session string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.sessions[session]; ok {
		return el.Value.(*sessionState).count, nil
	}
	return 0, nil
}

func (r *StateRepository) Advance(ctx context.Context, session string, ceiling int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.sessions[session]
	if ok {
		r.recency.MoveToFront(el)
	} else {
		el = r.recency.PushFront(&sessionState{id: session})
		r.sessions[session] = el
		r.evict()
	}

	s := el.Value.(*sessionState)
	prev := s.count
	if prev < ceiling {
		s.count = prev + 1
	}

	return prev, nil
}

// evict drops the least recently advanced sessions until the cap holds. Must hold mu.
func (r *StateRepository) evict() {
	for r.recency.Len() > r.maxSessions {
		oldest := r.recency.Back()
		r.recency.Remove(oldest)
		delete(r.sessions, oldest.Value.(*sessionState).id)
	}
}

// Len reports how many sessions are tracked.
func (r *StateRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
