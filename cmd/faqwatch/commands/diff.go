package commands

import (
	"fmt"
	"os"

	"faqwatch/lib/serviceutil"
	"faqwatch/lib/snapshot"

	"github.com/spf13/cobra"
)

var diffOut *string

func init() {
	diffOut = diffCmd.Flags().String("out", "", "Optional path to also write the JSON report to.")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Compares two snapshot files and prints the change report.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			if _, err := os.Stat(path); err != nil {
				serviceutil.Fatal(fmt.Sprintf("cannot read snapshot %s", path), err)
			}
		}

		report := snapshot.Diff(snapshot.Load(args[0]), snapshot.Load(args[1]))
		renderSummary(report)
		renderSamples(report)

		if *diffOut != "" {
			if err := snapshot.WriteReport(*diffOut, report); err != nil {
				serviceutil.Fatal("failed to write diff report", err)
			}
		}
	},
}
