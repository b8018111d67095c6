package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/bootstrap"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/config"
)

var container *bootstrap.Container

var rootCmd = &cobra.Command{
	Use:   "biaspro",
	Short: "Submit content for behavioral scoring and discuss the results",
	Long: `biaspro sends text, files or videos to the BIAS-PRO scoring service,
tracks an anonymous usage session across runs, and offers a chat
side-channel for discussing the returned scores.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		c, err := bootstrap.NewContainer(cfg)
		if err != nil {
			return err
		}
		container = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if container != nil {
			container.Shutdown()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ensureSession bootstraps the session before any gated command runs.
func ensureSession(ctx context.Context) error {
	if container.SessionService.Ready() {
		return nil
	}
	_, err := container.SessionService.Bootstrap(ctx)
	return err
}
