package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:   "programs [id]",
	Short: "List degree programs, or show one program's requirements",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprint(out, rt.renderer.Programs(rt.catalogue.Programs()))
			return nil
		}
		p, err := rt.catalogue.Program(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, rt.renderer.Program(p))
		return nil
	},
}
