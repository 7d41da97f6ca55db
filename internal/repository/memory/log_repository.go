package memory

import (
	"context"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/domain"
	"sync"
	"time"
)

const defaultMaxLogs = 1000

// LogRepository is a bounded ring of the most recent recommendation logs.
type LogRepository struct {
	mu      sync.Mutex
	entries []domain.RecommendationLog
	next    int
	full    bool
}

var _ advisor.RecommendationLogRepository = (*LogRepository)(nil)

// NewLogRepository keeps at most capacity entries; non-positive means the default of 1000.
func NewLogRepository(capacity int) *LogRepository {
	if capacity <= 0 {
		capacity = defaultMaxLogs
	}
	return &LogRepository{entries: make([]domain.RecommendationLog, capacity)}
}

func (r *LogRepository) SaveLog(ctx context.Context, log domain.RecommendationLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = log
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}

	return nil
}

// ListLogs returns up to limit entries, newest first.
func (r *LogRepository) ListLogs(ctx context.Context, limit int) ([]domain.RecommendationLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.full {
		size = len(r.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]domain.RecommendationLog, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (r.next - 1 - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}

	return out, nil
}
