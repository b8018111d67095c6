package reveal

import (
	"math"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
)

// Track is the reveal animation of a single score: a finite monotonic run of
// integer display values converging to the true (rounded) score. Offset is
// the global frame at which the track starts moving.
type Track struct {
	Label  string
	Offset int
	Frames []int
}

// Sequence is the full reveal plan for one result. Purely presentational;
// the underlying result is never touched.
type Sequence struct {
	Overall Track
	Layers  []Track
}

// Plan builds the reveal plan: the overall score animates first, then each
// layer in order, each starting stagger frames after the previous one.
func Plan(result *entity.AnalysisResult, steps, stagger int) *Sequence {
	if steps < 1 {
		steps = 1
	}
	if stagger < 0 {
		stagger = 0
	}

	seq := &Sequence{
		Overall: Track{
			Label:  "overall",
			Offset: 0,
			Frames: frames(result.OverallScore, steps),
		},
	}

	for i, layer := range result.Layers {
		seq.Layers = append(seq.Layers, Track{
			Label:  layer.Layer,
			Offset: (i + 1) * stagger,
			Frames: frames(layer.Score, steps),
		})
	}

	return seq
}

// TotalFrames is the global frame count after which every track has settled.
func (s *Sequence) TotalFrames() int {
	total := len(s.Overall.Frames)
	for _, t := range s.Layers {
		if end := t.Offset + len(t.Frames); end > total {
			total = end
		}
	}
	return total
}

// At returns the display value of a track at global frame n: the starting
// value before its offset, the final value after it settles.
func (t Track) At(n int) int {
	if len(t.Frames) == 0 {
		return 0
	}
	idx := n - t.Offset
	if idx < 0 {
		return 0
	}
	if idx >= len(t.Frames) {
		return t.Frames[len(t.Frames)-1]
	}
	return t.Frames[idx]
}

func frames(score float64, steps int) []int {
	target := int(math.Round(score))
	out := make([]int, steps)
	for k := 0; k < steps; k++ {
		out[k] = int(math.Round(float64(target) * float64(k+1) / float64(steps)))
	}
	// rounding already yields a non-decreasing run for non-negative targets,
	// but clamp anyway so a track can never flicker backwards
	for k := 1; k < steps; k++ {
		if out[k] < out[k-1] {
			out[k] = out[k-1]
		}
	}
	out[steps-1] = target
	return out
}
