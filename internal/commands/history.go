package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/gitops"
)

func newCommitCommand() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the current data directory in its git history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireRepo(cmd)
			if err != nil {
				return err
			}
			if message == "" {
				message = "snapshot " + time.Now().UTC().Format(time.RFC3339)
			}
			hash, err := gitops.CommitAll(cmd.Context(), dir, message)
			if errors.Is(err, gitops.ErrNothingToCommit) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to commit.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Committed %s: %s\n", hash, message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message (default: a timestamp)")

	return cmd
}

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the git history of the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireRepo(cmd)
			if err != nil {
				return err
			}
			commits, err := gitops.Log(cmd.Context(), dir, limit)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "COMMIT\tTIME\tMESSAGE")
			for _, c := range commits {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Hash, c.Time.Local().Format(time.DateTime), c.Message)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "show the most recent n commits (0 for all)")

	return cmd
}

func requireRepo(cmd *cobra.Command) (string, error) {
	dir, err := dataDir(cmd)
	if err != nil {
		return "", err
	}
	if !gitops.IsRepo(dir) {
		return "", fmt.Errorf("%s has no git history (run `pocketledger init --git`)", dir)
	}
	return dir, nil
}
