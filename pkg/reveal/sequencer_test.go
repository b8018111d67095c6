package reveal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
)

func fixtureResult() *entity.AnalysisResult {
	layers := make([]entity.LayerResult, 0, entity.LayerCount)
	scores := []float64{7.2, 3.9, 10, 0, 5.5, 8.1, 6.0, 2.4}
	labels := []string{
		"framing", "language", "sourcing", "emotional",
		"cultural", "statistical", "visual", "context",
	}
	for i := 0; i < entity.LayerCount; i++ {
		layers = append(layers, entity.LayerResult{Layer: labels[i], Score: scores[i]})
	}
	return &entity.AnalysisResult{OverallScore: 6.7, Layers: layers}
}

func TestPlan_FramesConvergeToRoundedScore(t *testing.T) {
	seq := Plan(fixtureResult(), 12, 3)

	require.Len(t, seq.Overall.Frames, 12)
	require.Equal(t, 7, seq.Overall.Frames[11]) // round(6.7)

	require.Len(t, seq.Layers, entity.LayerCount)
	require.Equal(t, 7, seq.Layers[0].Frames[11])  // round(7.2)
	require.Equal(t, 4, seq.Layers[1].Frames[11])  // round(3.9)
	require.Equal(t, 10, seq.Layers[2].Frames[11]) // max score
	require.Equal(t, 0, seq.Layers[3].Frames[11])  // min score
}

func TestPlan_FramesAreMonotonic(t *testing.T) {
	seq := Plan(fixtureResult(), 12, 3)

	tracks := append([]Track{seq.Overall}, seq.Layers...)
	for _, track := range tracks {
		for k := 1; k < len(track.Frames); k++ {
			require.GreaterOrEqual(t, track.Frames[k], track.Frames[k-1],
				"track %s must never count down", track.Label)
		}
	}
}

func TestPlan_LayersAreStaggered(t *testing.T) {
	seq := Plan(fixtureResult(), 10, 4)

	require.Equal(t, 0, seq.Overall.Offset)
	for i, track := range seq.Layers {
		require.Equal(t, (i+1)*4, track.Offset)
	}
	require.Equal(t, 8*4+10, seq.TotalFrames())
}

func TestTrack_AtClampsOutsideItsWindow(t *testing.T) {
	seq := Plan(fixtureResult(), 10, 4)
	track := seq.Layers[0] // offset 4, final 7

	require.Equal(t, 0, track.At(0))
	require.Equal(t, 0, track.At(3))
	require.Equal(t, track.Frames[0], track.At(4))
	require.Equal(t, 7, track.At(1000))
}

func TestPlan_DoesNotMutateResult(t *testing.T) {
	result := fixtureResult()
	before := *result
	_ = Plan(result, 12, 3)
	require.Equal(t, before.OverallScore, result.OverallScore)
	require.Equal(t, before.Layers, result.Layers)
}
