package advisor

import (
	"context"
	"fmt"
	"smelterAdvisor/domain"
	"smelterAdvisor/pkg/logger"

	"github.com/google/uuid"
)

type AdvisorService struct {
	estimator  MetricEstimator
	stateRepo  StateRepository
	paramRepo  ParameterRepository
	logRepo    RecommendationLogRepository
	defaultCfg Config
}

// NewAdvisorService wires the estimator and repositories. paramRepo and logRepo may be nil.
func NewAdvisorService(
	estimator MetricEstimator,
	stateRepo StateRepository,
	paramRepo ParameterRepository,
	logRepo RecommendationLogRepository,
	defaultCfg Config,
) *AdvisorService {
	return &AdvisorService{
		estimator:  estimator,
		stateRepo:  stateRepo,
		paramRepo:  paramRepo,
		logRepo:    logRepo,
		defaultCfg: defaultCfg,
	}
}

func (s *AdvisorService) EstimatorName() string {
	return s.estimator.Name()
}

// available is false only for estimators that report a missing model.
func (s *AdvisorService) available() bool {
	if l, ok := s.estimator.(interface{ Loaded() bool }); ok {
		return l.Loaded()
	}
	return true
}

// EstimatorAvailable reports whether predictions can currently be served.
func (s *AdvisorService) EstimatorAvailable() bool {
	return s.available()
}

// Predict reads the current Cu % without touching the adjustment counter.
func (s *AdvisorService) Predict(ctx context.Context, session string, raw map[string]any) (res domain.PredictResult, err error) {
	defer func() {
		AdvisorRequestsTotal.WithLabelValues("predict", s.estimator.Name(), outcome(err)).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return domain.PredictResult{}, fmt.Errorf("context error: %w", err)
	}

	if !s.available() {
		return domain.PredictResult{}, ErrEstimatorUnavailable
	}

	session = normalizeSession(session)

	features, err := ParseFeatures(raw, s.estimator.RequiredFeatures())
	if err != nil {
		return domain.PredictResult{}, err
	}

	count, err := s.stateRepo.Current(ctx, session)
	if err != nil {
		return domain.PredictResult{}, fmt.Errorf("read adjustment state: %w", err)
	}

	value, err := s.estimator.Estimate(ctx, features, count)
	if err != nil {
		return domain.PredictResult{}, err
	}
	if !isFinite(value) {
		return domain.PredictResult{}, fmt.Errorf("%w: estimate %v", ErrInternalComputation, value)
	}

	return domain.PredictResult{
		Prediction:      value,
		Source:          s.estimator.Name(),
		AdjustmentCount: count,
	}, nil
}

// Recommend estimates the current Cu %, derives adjustments and, once both succeed, advances the
// session counter. The returned AdjustmentCount is the counter value the estimate was made with.
func (s *AdvisorService) Recommend(ctx context.Context, session string, raw map[string]any) (res domain.RecommendResult, err error) {
	defer func() {
		AdvisorRequestsTotal.WithLabelValues("recommend", s.estimator.Name(), outcome(err)).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return domain.RecommendResult{}, fmt.Errorf("context error: %w", err)
	}

	if !s.available() {
		return domain.RecommendResult{}, ErrEstimatorUnavailable
	}

	session = normalizeSession(session)
	cfg := s.loadConfig(ctx)

	required := requiredFeatures(s.estimator.RequiredFeatures(), cfg.adjustable())
	features, err := ParseFeatures(raw, required)
	if err != nil {
		return domain.RecommendResult{}, err
	}

	count, err := s.stateRepo.Current(ctx, session)
	if err != nil {
		return domain.RecommendResult{}, fmt.Errorf("read adjustment state: %w", err)
	}

	current, err := s.estimator.Estimate(ctx, features, count)
	if err != nil {
		return domain.RecommendResult{}, err
	}

	recs, err := Generate(current, cfg, features)
	if err != nil {
		return domain.RecommendResult{}, err
	}

	// Only a served recommendation moves the session on. Concurrent calls on one session
	// may share a regime; Advance still caps the counter and never lowers it.
	if _, err := s.stateRepo.Advance(ctx, session, cfg.MaxAdjustments); err != nil {
		return domain.RecommendResult{}, fmt.Errorf("advance adjustment state: %w", err)
	}

	res = domain.RecommendResult{
		CurrentCu:       current,
		TargetCu:        cfg.TargetCu,
		Deviation:       cfg.TargetCu - current,
		AdjustmentCount: count,
		Estimator:       s.estimator.Name(),
		Recommendations: recs,
	}

	AdvisorCurrentCu.WithLabelValues(s.estimator.Name()).Set(current)
	for _, r := range recs {
		AdvisorRecommendationsTotal.WithLabelValues(r.Parameter, r.Action).Inc()
	}

	traceID := TraceIDFromContext(ctx)
	logger.Debug("advisor_recommend",
		"trace_id", traceID,
		"session", session,
		"estimator", s.estimator.Name(),
		"adjustment_count", count,
		"current_cu", current,
		"recommendations", len(recs),
	)

	s.saveLog(ctx, session, traceID, res, features)

	return res, nil
}

func (s *AdvisorService) saveLog(ctx context.Context, session, traceID string, res domain.RecommendResult, features domain.FeatureSet) {
	if s.logRepo == nil {
		return
	}

	entry := domain.RecommendationLog{
		ID:              uuid.NewString(),
		SessionID:       session,
		TraceID:         traceID,
		Estimator:       res.Estimator,
		AdjustmentCount: res.AdjustmentCount,
		CurrentCu:       res.CurrentCu,
		TargetCu:        res.TargetCu,
		Deviation:       res.Deviation,
		Features:        features.Map(),
		Recommendations: res.Recommendations,
	}

	if err := s.logRepo.SaveLog(ctx, entry); err != nil {
		logger.Warn("Failed to save recommendation log", "trace_id", traceID, "error", err)
	}
}

// AdjustmentCount returns the session counter without advancing it.
func (s *AdvisorService) AdjustmentCount(ctx context.Context, session string) (int, error) {
	count, err := s.stateRepo.Current(ctx, normalizeSession(session))
	if err != nil {
		return 0, fmt.Errorf("read adjustment state: %w", err)
	}
	return count, nil
}

func (s *AdvisorService) History(ctx context.Context, limit int) ([]domain.RecommendationLog, error) {
	if s.logRepo == nil {
		return []domain.RecommendationLog{}, nil
	}

	logs, err := s.logRepo.ListLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendation logs: %w", err)
	}
	return logs, nil
}

// Parameters returns the effective parameter table, overrides applied.
func (s *AdvisorService) Parameters(ctx context.Context) []domain.ParameterConfig {
	return s.loadConfig(ctx).Parameters
}

func (s *AdvisorService) UpsertParameter(ctx context.Context, p domain.ParameterConfig) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := ValidateParameter(p); err != nil {
		return err
	}

	if s.paramRepo == nil {
		return fmt.Errorf("%w: parameter storage is not configured", ErrInvalidParameter)
	}

	if err := s.paramRepo.UpsertParameter(ctx, p); err != nil {
		return fmt.Errorf("upsert parameter: %w", err)
	}

	logger.Info("advisor parameter updated", "name", p.Name, "enabled", p.Enabled)

	return nil
}
