package commands

import (
	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pocketledger",
		Short:   "Personal finance ledger with automatic categorization and spending insights",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("dir", "", "data directory (default $"+EnvHome+" or the current directory)")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(),
		newTransactionsCommand(),
		newImportCommand(),
		newLinkCommand(),
		newInsightsCommand(),
		newCheckCommand(),
		newExportCommand(),
		newInstitutionsCommand(),
		newActivityCommand(),
		newCommitCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}
