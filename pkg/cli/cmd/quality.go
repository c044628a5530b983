package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/csvlab/csvlab/pkg/dataset"
	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var (
	qualitySepFlag  string
	qualityJsonFlag bool
)

var qualityCmd = &cobra.Command{
	Use:   "quality <csv-file>",
	Short: "Compute data-quality flags and a quality score for a CSV file",
	Args:  cobra.ExactArgs(1),
	Example: `
csvlab quality data.csv
csvlab quality data.csv --json
`,
	Run: func(cmd *cobra.Command, args []string) {
		table, err := loadTable(args[0], qualitySepFlag)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		summary := dataset.Summarize(table, dataset.DefaultExampleValues)
		missing := dataset.MissingTable(table)
		flags := quality.Compute(summary, missing, quality.DefaultThresholds())

		if qualityJsonFlag {
			data, err := json.MarshalIndent(flags, "", "  ")
			if err != nil {
				fmt.Println(err.Error())
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		printVerdict("too_few_rows", flags.TooFewRows)
		printVerdict("too_many_columns", flags.TooManyColumns)
		printVerdict("too_many_missing", flags.TooManyMissing)
		printVerdict("has_constant_columns", flags.HasConstantColumns)
		printVerdict("has_high_cardinality_categoricals", flags.HasHighCardinalityCategoricals)
		printVerdict("has_suspicious_id_duplicates", flags.HasSuspiciousIDDuplicates)
		printVerdict("has_many_zero_values", flags.HasManyZeroValues)
		fmt.Printf("max_missing_share: %.3f\n", flags.MaxMissingShare)

		fmt.Print("\nQuality score: ")
		score := fmt.Sprintf("%.2f", flags.QualityScore)
		if flags.QualityScore >= 0.8 {
			fmt.Println(aurora.Green(score))
		} else if flags.QualityScore >= 0.5 {
			fmt.Println(aurora.Yellow(score))
		} else {
			fmt.Println(aurora.Red(score))
		}
	},
}

func printVerdict(name string, flagged bool) {
	if flagged {
		fmt.Printf("%s: %s\n", name, aurora.Red("flagged"))
		return
	}
	fmt.Printf("%s: %s\n", name, aurora.Green("ok"))
}

func init() {
	qualityCmd.Flags().StringVar(&qualitySepFlag, "sep", ",", "CSV separator")
	qualityCmd.Flags().BoolVar(&qualityJsonFlag, "json", false, "Print flags as JSON")
	RootCmd.AddCommand(qualityCmd)
}
