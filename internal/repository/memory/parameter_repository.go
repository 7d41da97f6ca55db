package memory

import (
	"context"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/domain"
	"sort"
	"sync"
	"time"
)

// ParameterRepository keeps parameter overrides for the life of the process.
type ParameterRepository struct {
	mu     sync.RWMutex
	params map[string]domain.ParameterConfig
}

var _ advisor.ParameterRepository = (*ParameterRepository)(nil)

func NewParameterRepository() *ParameterRepository {
	return &ParameterRepository{params: make(map[string]domain.ParameterConfig)}
}

func (r *ParameterRepository) ListParameters(ctx context.Context) ([]domain.ParameterConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ParameterConfig, 0, len(r.params))
	for _, p := range r.params {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *ParameterRepository) UpsertParameter(ctx context.Context, p domain.ParameterConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	r.params[p.Name] = p
	r.mu.Unlock()

	return nil
}
