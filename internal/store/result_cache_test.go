package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
)

func TestResultCache_RoundTrip(t *testing.T) {
	c := NewResultCache(time.Minute)

	_, found := c.Get("s1")
	require.False(t, found)

	results := []*entity.AnalysisResult{{OverallScore: 8}}
	c.Save("s1", results)

	got, found := c.Get("s1")
	require.True(t, found)
	require.Equal(t, results, got)

	c.Delete("s1")
	_, found = c.Get("s1")
	require.False(t, found)
}
