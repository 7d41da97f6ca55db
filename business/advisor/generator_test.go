//go:build !integration

package advisor

import (
	"errors"
	"math"
	"smelterAdvisor/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featureSet(values map[string]float64) domain.FeatureSet {
	var fs domain.FeatureSet
	for _, name := range []string{domain.FeatureBlastVolume, domain.FeatureFeeder2Speed} {
		if v, ok := values[name]; ok {
			fs.Set(name, v)
		}
	}
	for k, v := range values {
		fs.Set(k, v)
	}
	return fs
}

var plantReading = map[string]float64{
	domain.FeatureBlastVolume:  27000,
	domain.FeatureFeeder2Speed: 30,
}

func TestGenerateBelowTargetRanksFeederFirst(t *testing.T) {
	recs, err := Generate(55.0, DefaultConfig(), featureSet(plantReading))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	feeder, blast := recs[0], recs[1]

	assert.Equal(t, domain.FeatureFeeder2Speed, feeder.Parameter)
	assert.Equal(t, domain.ActionIncrease, feeder.Action)
	assert.Equal(t, 30.0, feeder.CurrentValue)
	assert.Equal(t, 45.0, feeder.RecommendedValue)
	assert.Equal(t, 15.0, feeder.Change)
	assert.Equal(t, 0.1, feeder.Importance)
	assert.Equal(t, "15-45", feeder.SafetyLimit)

	assert.Equal(t, domain.FeatureBlastVolume, blast.Parameter)
	assert.Equal(t, domain.ActionIncrease, blast.Action)
	assert.InDelta(t, 27375.0, blast.RecommendedValue, 1e-9)
	assert.InDelta(t, 375.0, blast.Change, 1e-9)
	assert.Equal(t, "15000-35000", blast.SafetyLimit)
}

func TestGenerateAboveTargetDecreases(t *testing.T) {
	recs, err := Generate(64.0, DefaultConfig(), featureSet(plantReading))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	for _, r := range recs {
		assert.Equal(t, domain.ActionDecrease, r.Action)
		assert.Less(t, r.RecommendedValue, r.CurrentValue)
	}
	assert.Equal(t, 27.0, recs[0].RecommendedValue)
	assert.InDelta(t, 26925.0, recs[1].RecommendedValue, 1e-9)
}

func TestGenerateDeadBand(t *testing.T) {
	for _, current := range []float64{62.0, 62.5, 63.0, 62.25} {
		recs, err := Generate(current, DefaultConfig(), featureSet(plantReading))
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs, "current=%v", current)
	}
}

func TestGenerateNegativeCoefficientFlipsDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parameters = []domain.ParameterConfig{{
		Name:           "oxygen",
		Coefficient:    -0.5,
		MagnitudeScale: 1,
		Enabled:        true,
	}}

	recs, err := Generate(60.0, cfg, featureSet(map[string]float64{"oxygen": 70}))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, domain.ActionDecrease, recs[0].Action)
	assert.Equal(t, 67.5, recs[0].RecommendedValue)
	assert.Equal(t, 0.5, recs[0].Importance)
	assert.Equal(t, domain.SafetyLimitUnbounded, recs[0].SafetyLimit)
}

func TestGenerateSkipsDisabledAndZeroCoefficient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parameters[0].Enabled = false
	cfg.Parameters[1].Coefficient = 0

	recs, err := Generate(50.0, cfg, featureSet(plantReading))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestGenerateClampsOutOfRangeCurrentValue(t *testing.T) {
	reading := map[string]float64{
		domain.FeatureBlastVolume:  50000,
		domain.FeatureFeeder2Speed: 5,
	}

	recs, err := Generate(62.0-0.6, DefaultConfig(), featureSet(reading))
	require.NoError(t, err)

	for _, r := range recs {
		switch r.Parameter {
		case domain.FeatureBlastVolume:
			assert.Equal(t, 35000.0, r.RecommendedValue)
			assert.Equal(t, 15000.0, r.Change)
		case domain.FeatureFeeder2Speed:
			assert.Equal(t, 15.0, r.RecommendedValue)
		}
	}
}

func TestGenerateRecommendedAlwaysInRange(t *testing.T) {
	cfg := DefaultConfig()
	for current := 40.0; current <= 80.0; current += 0.37 {
		for _, blast := range []float64{0, 15000, 27000, 35000, 90000} {
			for _, feeder := range []float64{-10, 15, 30, 45, 200} {
				recs, err := Generate(current, cfg, featureSet(map[string]float64{
					domain.FeatureBlastVolume:  blast,
					domain.FeatureFeeder2Speed: feeder,
				}))
				require.NoError(t, err)

				for i, r := range recs {
					p := cfg.Parameters[0]
					if r.Parameter == domain.FeatureFeeder2Speed {
						p = cfg.Parameters[1]
					}
					assert.GreaterOrEqual(t, r.RecommendedValue, *p.NormMin)
					assert.LessOrEqual(t, r.RecommendedValue, *p.NormMax)
					assert.InDelta(t, math.Abs(r.RecommendedValue-r.CurrentValue), r.Change, 1e-9)
					if i > 0 {
						assert.GreaterOrEqual(t, recs[i-1].Importance, r.Importance)
					}
				}
			}
		}
	}
}

func TestGenerateStableOrderForTies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parameters = []domain.ParameterConfig{
		{Name: "a", Coefficient: 0.1, MagnitudeScale: 1, Enabled: true},
		{Name: "b", Coefficient: -0.1, MagnitudeScale: 1, Enabled: true},
		{Name: "c", Coefficient: 0.3, MagnitudeScale: 1, Enabled: true},
	}

	recs, err := Generate(55, cfg, featureSet(map[string]float64{"a": 1, "b": 1, "c": 1}))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "c", recs[0].Parameter)
	assert.Equal(t, "a", recs[1].Parameter)
	assert.Equal(t, "b", recs[2].Parameter)
}

func TestGenerateRejectsNonFiniteMetric(t *testing.T) {
	_, err := Generate(math.NaN(), DefaultConfig(), featureSet(plantReading))
	assert.True(t, errors.Is(err, ErrInternalComputation))

	_, err = Generate(math.Inf(1), DefaultConfig(), featureSet(plantReading))
	assert.True(t, errors.Is(err, ErrInternalComputation))
}

func TestGenerateMissingParameterValue(t *testing.T) {
	_, err := Generate(55, DefaultConfig(), featureSet(map[string]float64{domain.FeatureBlastVolume: 27000}))

	var fe *FeatureError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{domain.FeatureFeeder2Speed}, fe.Missing)
	assert.True(t, errors.Is(err, ErrInvalidFeatures))
}
