package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate credits against a program at a given term",
	Example: `  credaudit evaluate --program btech --term 8 --credit Core=60 --credit "GE (Total)=20"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		program, snap, err := snapshotFromFlags(cmd)
		if err != nil {
			return err
		}
		rep, err := rt.service().EvaluateAdHoc(program, snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.Evaluation(rep))
		return nil
	},
}

func init() {
	addSnapshotFlags(evaluateCmd)
}
