package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict graduation eligibility",
	Long: "Runs the time-window rules and, when they pass, asks the eligibility\n" +
		"model. Without --model-url the built-in requirements model is used.",
	RunE: func(cmd *cobra.Command, args []string) error {
		program, snap, err := snapshotFromFlags(cmd)
		if err != nil {
			return err
		}
		verdict, err := rt.service().Predict(cmd.Context(), program, snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.Verdict(verdict))
		return nil
	},
}

func init() {
	addSnapshotFlags(predictCmd)
}
