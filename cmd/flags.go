package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/credaudit/internal/eligibility"
)

// addSnapshotFlags registers the flags describing an ad hoc student.
func addSnapshotFlags(cmd *cobra.Command) {
	cmd.Flags().String("program", "", "Degree program ID or alias (see `credaudit programs`)")
	cmd.Flags().Int("term", 0, "Current term, starting at 1")
	cmd.Flags().StringArray("credit", nil, `Earned credits as "Category=N" (repeatable)`)
	_ = cmd.MarkFlagRequired("program")
	_ = cmd.MarkFlagRequired("term")
}

func snapshotFromFlags(cmd *cobra.Command) (string, eligibility.Snapshot, error) {
	program, _ := cmd.Flags().GetString("program")
	term, _ := cmd.Flags().GetInt("term")
	raw, _ := cmd.Flags().GetStringArray("credit")

	credits, err := parseCredits(raw)
	if err != nil {
		return "", eligibility.Snapshot{}, err
	}
	return program, eligibility.Snapshot{CurrentTerm: term, Earned: credits}, nil
}

// parseCredits turns "Category=N" pairs into a credit map. Category names
// may contain spaces; the last '=' separates the value. Repeated
// categories are an error.
func parseCredits(pairs []string) (map[string]int, error) {
	credits := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		i := strings.LastIndex(pair, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid credit %q: want Category=N", pair)
		}
		name := strings.TrimSpace(pair[:i])
		n, err := strconv.Atoi(strings.TrimSpace(pair[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid credit %q: %w", pair, err)
		}
		if _, dup := credits[name]; dup {
			return nil, fmt.Errorf("credit for %q given twice", name)
		}
		credits[name] = n
	}
	return credits, nil
}
