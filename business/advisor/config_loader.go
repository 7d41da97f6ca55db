package advisor

import (
	"context"
	"smelterAdvisor/domain"
	"smelterAdvisor/pkg/logger"
)

// loadConfig overlays stored parameter overrides on defaultCfg.
// Overrides replace defaults with the same name; unknown names are appended in repository order.
func (s *AdvisorService) loadConfig(ctx context.Context) Config {
	cfg := s.defaultCfg
	cfg.Parameters = append([]domain.ParameterConfig(nil), s.defaultCfg.Parameters...)

	if s.paramRepo == nil {
		return cfg
	}

	overrides, err := s.paramRepo.ListParameters(ctx)
	if err != nil {
		logger.Warn("Failed to load parameter overrides, using defaults", "error", err)
		return cfg
	}

	cfg.Parameters = overlayParameters(cfg.Parameters, overrides)

	return cfg
}

func overlayParameters(base, overrides []domain.ParameterConfig) []domain.ParameterConfig {
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[p.Name] = i
	}

	out := base
	for _, o := range overrides {
		if ValidateParameter(o) != nil {
			continue
		}
		if i, ok := index[o.Name]; ok {
			out[i] = o
			continue
		}
		index[o.Name] = len(out)
		out = append(out, o)
	}

	return out
}
