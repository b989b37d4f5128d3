package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check time-window rules for PEP, SIP and IIP credits",
	RunE: func(cmd *cobra.Command, args []string) error {
		program, snap, err := snapshotFromFlags(cmd)
		if err != nil {
			return err
		}
		violations, err := rt.service().CheckTimeWindows(program, snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.Violations(violations))
		if len(violations) > 0 {
			return fmt.Errorf("%d time-window violation(s)", len(violations))
		}
		return nil
	},
}

func init() {
	addSnapshotFlags(checkCmd)
}
