package advisor

import (
	"context"
	"fmt"
	"math/rand"
	"smelterAdvisor/domain"
	"sync"
	"time"
)

const (
	EstimatorSimulated = "simulated"
	EstimatorModel     = "model"

	defaultNoiseStdDev = 0.5
)

// MetricEstimator produces the current Cu % reading.
type MetricEstimator interface {
	Name() string
	// RequiredFeatures lists the inputs Estimate reads, in model order.
	RequiredFeatures() []string
	Estimate(ctx context.Context, features domain.FeatureSet, adjustmentCount int) (float64, error)
}

type regime struct {
	center float64
	lo     float64
	hi     float64
}

// Readings drift toward the target as adjustments accumulate.
var simulatedRegimes = [...]regime{
	{center: 55.0, lo: 50.0, hi: 60.0},
	{center: 58.0, lo: 55.0, hi: 61.0},
	{center: 62.5, lo: 60.0, hi: 65.0},
}

func simulatedRegime(adjustmentCount int) regime {
	idx := adjustmentCount % len(simulatedRegimes)
	if idx < 0 {
		idx += len(simulatedRegimes)
	}
	return simulatedRegimes[idx]
}

// SimulatedEstimator returns noisy readings from a regime chosen by the adjustment counter.
type SimulatedEstimator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	noiseStdDev float64
}

// NewSimulatedEstimator seeds from the clock when seed is 0.
func NewSimulatedEstimator(seed int64, noiseStdDev float64) *SimulatedEstimator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if noiseStdDev < 0 {
		noiseStdDev = defaultNoiseStdDev
	}

	return &SimulatedEstimator{
		rng:         rand.New(rand.NewSource(seed)),
		noiseStdDev: noiseStdDev,
	}
}

func (e *SimulatedEstimator) Name() string {
	return EstimatorSimulated
}

func (e *SimulatedEstimator) RequiredFeatures() []string {
	return nil
}

func (e *SimulatedEstimator) Estimate(ctx context.Context, _ domain.FeatureSet, adjustmentCount int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	r := simulatedRegime(adjustmentCount)

	e.mu.Lock()
	noise := e.rng.NormFloat64() * e.noiseStdDev
	e.mu.Unlock()

	return clamp(r.center+noise, r.lo, r.hi), nil
}
