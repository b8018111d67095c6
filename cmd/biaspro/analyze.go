package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/progress"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/reveal"
)

var (
	analyzeMode string
	analyzeText string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeMode, "mode", "m", "creator", "analysis mode: creator, academic, hybrid or social")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "text content to analyze")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Submit text and/or files for behavioral scoring",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		var artifacts []*entity.Artifact
		if analyzeText != "" {
			artifacts = append(artifacts, entity.NewTextArtifact(analyzeText))
		}
		for _, path := range args {
			artifacts = append(artifacts, entity.NewFileArtifact(path, ""))
		}

		results, err := container.AnalysisService.Submit(
			ctx,
			entity.AnalysisMode(analyzeMode),
			artifacts,
			renderProgress,
		)
		fmt.Println()
		if err != nil {
			return err
		}

		for i, result := range results {
			if len(results) > 1 {
				fmt.Printf("\n── Result %d of %d ──\n", i+1, len(results))
			}
			renderResult(result)
		}

		if session, ok := container.SessionService.Current(); ok {
			fmt.Printf("\nFree requests used: %d\n", session.FreeRequestsUsed)
		}
		return nil
	},
}

func renderProgress(state progress.State) {
	width := 40
	filled := int(state.Percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Printf("\r[%s] %5.1f%%  (item %d/%d)",
		color.CyanString(bar), state.Percent, state.ItemIndex+1, state.TotalItems)
}

// renderResult plays the staggered score reveal, then prints the prose.
func renderResult(result *entity.AnalysisResult) {
	seq := reveal.Plan(result, 12, 3)

	for n := 0; n < len(seq.Overall.Frames); n++ {
		fmt.Printf("\rOverall score: %s", color.New(color.Bold).Sprintf("%2d/10", seq.Overall.At(n)))
		time.Sleep(40 * time.Millisecond)
	}
	fmt.Println()

	for _, track := range seq.Layers {
		end := track.Offset + len(track.Frames)
		for n := track.Offset; n < end; n++ {
			fmt.Printf("\r  %-24s %2d/10", track.Label, track.At(n))
			time.Sleep(40 * time.Millisecond)
		}
		fmt.Println()
	}

	if result.Summary != "" {
		fmt.Printf("\n%s\n", result.Summary)
	}
	for _, rec := range result.Recommendations {
		fmt.Printf("  • %s\n", rec)
	}
}
