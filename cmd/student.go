package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage stored students and their evaluation history",
}

var studentAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, snap, err := snapshotFromFlags(cmd)
		if err != nil {
			return err
		}
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := svc.RegisterStudent(cmd.Context(), args[0], program, snap.CurrentTerm, snap.Earned)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.ID)
		return nil
	},
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()

		students, err := svc.Students(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.Students(students))
		return nil
	},
}

var studentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a student's evaluation without recording it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()

		rep, err := svc.InspectStudent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.Evaluation(rep))
		return nil
	},
}

var studentCreditsCmd = &cobra.Command{
	Use:   "credits <id>",
	Short: "Record earned credits",
	Example: `  credaudit student credits 5f0c... --credit Core=12 --credit "Short IIP=2"`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("credit")
		credits, err := parseCredits(raw)
		if err != nil {
			return err
		}
		if len(credits) == 0 {
			return fmt.Errorf("at least one --credit is required")
		}
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()
		return svc.RecordCredits(cmd.Context(), args[0], credits)
	},
}

var studentTermCmd = &cobra.Command{
	Use:   "term <id> <term>",
	Short: "Set a student's current term",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var term int
		if _, err := fmt.Sscan(args[1], &term); err != nil {
			return fmt.Errorf("invalid term %q: %w", args[1], err)
		}
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()
		return svc.SetTerm(cmd.Context(), args[0], term)
	},
}

var studentEvaluateCmd = &cobra.Command{
	Use:   "evaluate [id]",
	Short: "Evaluate a student (or all students) and record the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			return fmt.Errorf("give a student ID or --all")
		}
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		if !all {
			rep, err := svc.EvaluateStudent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rt.renderer.Evaluation(rep))
			return nil
		}

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		reports, err := svc.EvaluateAll(cmd.Context(), concurrency)
		if err != nil {
			return err
		}
		for _, rep := range reports {
			fmt.Fprintln(out, rt.renderer.Evaluation(rep))
			fmt.Fprintln(out)
		}
		return nil
	},
}

var studentPredictCmd = &cobra.Command{
	Use:   "predict <id>",
	Short: "Predict graduation eligibility for a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()

		verdict, err := svc.PredictStudent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.Verdict(verdict))
		return nil
	},
}

var studentHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show recorded evaluations, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		svc, closeStore, err := rt.openService()
		if err != nil {
			return err
		}
		defer closeStore()

		records, err := svc.History(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.renderer.History(records))
		return nil
	},
}

func init() {
	addSnapshotFlags(studentAddCmd)
	studentCreditsCmd.Flags().StringArray("credit", nil, `Earned credits as "Category=N" (repeatable)`)
	studentEvaluateCmd.Flags().Bool("all", false, "Evaluate every stored student")
	studentEvaluateCmd.Flags().Int("concurrency", 4, "Evaluations in flight with --all")
	studentHistoryCmd.Flags().Int("limit", 20, "Maximum records to show (0 for all)")

	studentCmd.AddCommand(studentAddCmd)
	studentCmd.AddCommand(studentListCmd)
	studentCmd.AddCommand(studentShowCmd)
	studentCmd.AddCommand(studentCreditsCmd)
	studentCmd.AddCommand(studentTermCmd)
	studentCmd.AddCommand(studentEvaluateCmd)
	studentCmd.AddCommand(studentPredictCmd)
	studentCmd.AddCommand(studentHistoryCmd)
}
