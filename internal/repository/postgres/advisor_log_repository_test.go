//go:build !integration

package postgres

import (
	"bytes"
	"os"
	"smelterAdvisor/domain"
	"smelterAdvisor/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeRecommendations(t *testing.T) {
	var buf bytes.Buffer
	logger.Init("production")
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.Init("development")
	})

	logs := []domain.RecommendationLog{
		{ID: "ok", RecommendationsRaw: datatypes.JSON(`[{"parameter":"feeder 2, speed","action":"increase","importance":0.1}]`)},
		{ID: "corrupt-row", RecommendationsRaw: datatypes.JSON(`{"parameter":`)},
		{ID: "empty"},
	}

	decodeRecommendations(logs)

	require.Len(t, logs[0].Recommendations, 1)
	assert.Equal(t, domain.ActionIncrease, logs[0].Recommendations[0].Action)
	assert.Empty(t, logs[1].Recommendations)
	assert.Empty(t, logs[2].Recommendations)

	out := buf.String()
	assert.Contains(t, out, "corrupt-row")
	assert.Contains(t, out, "Failed to decode stored recommendations")
	assert.NotContains(t, out, `"log_id":"ok"`)
}
