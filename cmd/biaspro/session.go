package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	sessionCmd.AddCommand(sessionResetCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the current anonymous session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSession(cmd.Context()); err != nil {
			return err
		}
		session, _ := container.SessionService.Current()
		fmt.Printf("Session:            %s\n", session.SessionID)
		fmt.Printf("Created:            %s\n", session.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("Free requests used: %d\n", session.FreeRequestsUsed)
		return nil
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the local identity; the next run starts a fresh session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := container.SessionService.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Local session identity discarded.")
		return nil
	},
}
