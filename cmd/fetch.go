package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casefiles/internal/session"
	"casefiles/internal/sftpclient"
	"casefiles/internal/ui"
	"casefiles/pkg/utils"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Interactively download a case directory or single files",
	Long: `Connect to the support SFTP server and download case files.

The command prompts for your username and password, then for a case number and
a local parent directory. You can download the entire case folder or pick
individual files. Server bookkeeping files are always skipped.`,
	Example: `  # Fully interactive session
  casefiles fetch

  # Pre-select the case and destination, still confirm interactively
  casefiles fetch --case 00123 --destination ~/Downloads

  # Download the whole case folder without the yes/no question
  casefiles fetch --case 00123 --destination ~/Downloads --yes`,
	Run: func(cmd *cobra.Command, args []string) {
		runFetch(cmd)
	},
}

func runFetch(cmd *cobra.Command) {
	ctx := createContext()

	caseNumber, _ := cmd.Flags().GetString("case")
	destination, _ := cmd.Flags().GetString("destination")
	assumeYes, _ := cmd.Flags().GetBool("yes")

	if isVerbose(cmd) {
		cmd.Printf("Connecting to %s:%d\n", cfg.Host, cfg.Port)
	}

	dial := func(username, password string) (session.Conn, error) {
		return sftpclient.Connect(cfg, username, password)
	}

	controller := session.New(cfg, ui.NewConsole(), dial, ui.NewProgressBar(), os.Stdout, session.Options{
		CaseNumber:  caseNumber,
		Destination: destination,
		AssumeYes:   assumeYes,
	})

	err := controller.Run(ctx)
	if err != nil && !session.Reported(err) {
		utils.PrintError(err, "fetch")
	}

	fmt.Println("\nSession has ended.")
}

func init() {
	fetchCmd.Flags().StringP("case", "c", "", "Case number to download (skips the prompt)")
	fetchCmd.Flags().StringP("destination", "d", "", "Local parent directory for the case folder (skips the prompt)")
	fetchCmd.Flags().BoolP("yes", "y", false, "Download the entire case folder without asking")
}
