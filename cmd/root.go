package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"casefiles/config"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "casefiles",
	Short: "Download case files from the support SFTP server",
	Long: `casefiles is a command-line tool for downloading case file directories
from the support SFTP server. It connects with your credentials, lets you pick
a case number and download either the whole case folder or individual files.
Server details are loaded from a .env file or environment variables.`,
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// createContext returns a context that is cancelled on SIGINT/SIGTERM so an
// interrupt at any prompt aborts the session and still runs teardown.
func createContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	return ctx
}
