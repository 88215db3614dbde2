package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"casefiles/internal/models"
	"casefiles/internal/sftpclient"
	"casefiles/internal/ui"
	"casefiles/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list [case]",
	Short: "List the contents of a case directory",
	Long: `List the contents of a remote case directory without downloading
anything. Prompts for credentials, then prints the entries as JSON.`,
	Example: `  # List case 00123
  casefiles list 00123

  # With per-entry sizes
  casefiles list 00123 --verbose`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, args)
	},
}

func runList(cmd *cobra.Command, args []string) {
	ctx := createContext()
	caseNumber := args[0]

	console := ui.NewConsole()
	username, err := console.Line(ctx, "Enter your user name: ")
	if err != nil {
		utils.PrintError(err, "list")
		return
	}
	password, err := console.Password(ctx, "Enter your password: ")
	if err != nil {
		utils.PrintError(err, "list")
		return
	}

	client, err := sftpclient.Connect(cfg, username, password)
	if err != nil {
		utils.PrintError(err, "list")
		return
	}
	defer client.Close()

	remoteDir := path.Join(cfg.RemoteBase, caseNumber)
	entries, err := client.List(remoteDir)
	if err != nil {
		utils.PrintError(fmt.Errorf("remote directory '%s' does not exist: %w", remoteDir, err), "list")
		return
	}

	listing := &models.CaseListing{
		Host:       cfg.Host,
		CaseNumber: caseNumber,
		Entries:    entries,
		EntryCount: len(entries),
	}

	if err := utils.PrintJSON(listing); err != nil {
		utils.PrintError(err, "list")
		return
	}

	if isVerbose(cmd) {
		for _, entry := range entries {
			if entry.IsDir {
				cmd.Printf("  %s/\n", entry.Name)
				continue
			}
			cmd.Printf("  %s (%s)\n", entry.Name, utils.FormatSize(entry.Size))
		}
	}
}
