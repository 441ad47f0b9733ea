package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PolarWolf314/modelorg/internal/audit"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyReverse bool
	historyJSON    bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "limit number of entries shown")
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "show most recent entries first")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON array")
}

func resetHistoryCommandState() {
	historyLimit = 0
	historyReverse = false
	historyJSON = false
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the operation history",
	Long: `Displays the history of operations that changed projects or experiments.

--project restricts the output to one project.

Examples:
  modelorg history
  modelorg history -n 10 --reverse
  modelorg history --project trigo --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting history command")

		entries, err := audit.ReadEntries(store.ConfigDir)
		if err != nil {
			return reportError(cmd, fmt.Errorf("failed to read history: %w", err))
		}
		entries = audit.Filter(entries, project)
		Logger.Debugf("Found %d history entries", len(entries))

		if historyReverse {
			for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
		if historyLimit > 0 && len(entries) > historyLimit {
			if historyReverse {
				entries = entries[:historyLimit]
			} else {
				entries = entries[len(entries)-historyLimit:]
			}
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			if entries == nil {
				entries = []audit.Entry{}
			}
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return reportError(cmd, fmt.Errorf("failed to marshal entries to JSON: %w", err))
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No history entries found.")
			return nil
		}
		outputHistory(out, entries)
		return nil
	},
}

func outputHistory(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%-19s  %-12s  %-10s  %s\n", formatDateTime(e.Timestamp), e.User, e.Operation, formatDetails(e))
	}
}

func formatDateTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDetails(e audit.Entry) string {
	var parts []string
	if e.Project != "" {
		parts = append(parts, e.Project)
	}
	if e.Experiment != "" {
		parts = append(parts, e.Experiment)
	}
	if len(e.Experiments) > 0 {
		parts = append(parts, "["+strings.Join(e.Experiments, ", ")+"]")
	}
	if e.Key != "" {
		parts = append(parts, e.Key)
	}
	if e.Container != "" {
		parts = append(parts, "-> "+e.Container)
	}
	if e.Removed {
		parts = append(parts, "(root removed)")
	}
	return strings.Join(parts, " ")
}
