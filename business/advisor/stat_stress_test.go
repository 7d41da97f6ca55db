//go:build !integration

package advisor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario params
const (
	stressNumSessions = 2000
	stressRounds      = 3
	stressNoise       = 0.5
)

func TestStressSimulatedRegimes(t *testing.T) {
	svc := NewAdvisorService(NewSimulatedEstimator(2023, stressNoise), newFakeStateRepo(), nil, nil, DefaultConfig())
	ctx := context.Background()

	sums := make([]float64, stressRounds)
	quiet := make([]int, stressRounds)

	for s := 0; s < stressNumSessions; s++ {
		session := fmt.Sprintf("line-%d", s)
		for round := 0; round < stressRounds; round++ {
			res, err := svc.Recommend(ctx, session, plantPayload())
			require.NoError(t, err)
			require.Equal(t, round, res.AdjustmentCount)

			sums[round] += res.CurrentCu
			if len(res.Recommendations) == 0 {
				quiet[round]++
			}
		}
	}

	wantMeans := []float64{55.0, 58.0, 62.5}
	for round := range sums {
		mean := sums[round] / stressNumSessions
		share := float64(quiet[round]) / stressNumSessions
		t.Logf("[round %d] mean_cu=%.3f within_dead_band=%.3f", round, mean, share)

		assert.InDelta(t, wantMeans[round], mean, 0.1)
	}

	// Only the final regime sits on target, so only it falls inside the dead band.
	assert.Zero(t, quiet[0])
	assert.Zero(t, quiet[1])

	// P(|N(0, 0.5)| <= 0.5) is about 0.68
	share := float64(quiet[2]) / stressNumSessions
	assert.InDelta(t, 0.68, share, 0.06)
}
