package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/csvlab/csvlab/pkg/report"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var (
	reportSepFlag             string
	reportOutDirFlag          string
	reportTitleFlag           string
	reportTopKFlag            int
	reportMaxHistColumnsFlag  int
	reportMinMissingShareFlag float64
)

var reportCmd = &cobra.Command{
	Use:   "report <csv-file>",
	Short: "Generate a full EDA report with tabular artifacts",
	Args:  cobra.ExactArgs(1),
	Example: `
csvlab report data.csv
csvlab report data.csv --out-dir reports --title "Q3 orders"
`,
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		table, err := loadTable(path, reportSepFlag)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		opts := report.DefaultOptions(reportOutDirFlag)
		opts.Title = reportTitleFlag
		opts.SourceName = filepath.Base(path)
		opts.TopK = reportTopKFlag
		opts.MaxHistColumns = reportMaxHistColumnsFlag
		opts.MinMissingShare = reportMinMissingShareFlag

		p, err := report.Generate(table, opts)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		fmt.Printf("Report generated in: %s\n", reportOutDirFlag)
		fmt.Printf("- Main markdown: %s\n", filepath.Join(reportOutDirFlag, "report.md"))
		fmt.Println("- Tabular files: summary.csv, missing.csv, correlation.csv, top_categories/*.csv")
		fmt.Print("- Quality score: ")
		fmt.Println(aurora.Bold(fmt.Sprintf("%.2f", p.Quality.QualityScore)))
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSepFlag, "sep", ",", "CSV separator")
	reportCmd.Flags().StringVar(&reportOutDirFlag, "out-dir", "reports", "Report output directory")
	reportCmd.Flags().StringVar(&reportTitleFlag, "title", "EDA report", "Report title")
	reportCmd.Flags().IntVar(&reportTopKFlag, "top-k-categories", 5, "Top values per categorical feature")
	reportCmd.Flags().IntVar(&reportMaxHistColumnsFlag, "max-hist-columns", 6, "Numeric columns listed in report.md")
	reportCmd.Flags().Float64Var(&reportMinMissingShareFlag, "min-missing-share", 0.1, "Missing-share threshold for problem columns (0.0-1.0)")
	RootCmd.AddCommand(reportCmd)
}
