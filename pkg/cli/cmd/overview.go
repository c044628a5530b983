package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/csvlab/csvlab/pkg/dataset"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	overviewSepFlag         string
	overviewMaxExamplesFlag int
)

var overviewCmd = &cobra.Command{
	Use:   "overview <csv-file>",
	Short: "Print a short dataset overview: dimensions, dtypes, per-column stats",
	Args:  cobra.ExactArgs(1),
	Example: `
csvlab overview data.csv
csvlab overview data.csv --sep ";"
`,
	Run: func(cmd *cobra.Command, args []string) {
		table, err := loadTable(args[0], overviewSepFlag)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		summary := dataset.Summarize(table, overviewMaxExamplesFlag)

		fmt.Printf("Rows: %d\n", summary.NRows)
		fmt.Printf("Columns: %d\n\n", summary.NCols)

		writer := tablewriter.NewWriter(os.Stdout)
		writer.SetHeader([]string{"name", "dtype", "non_null", "missing", "missing_share", "unique", "examples", "min", "max", "mean", "std"})
		writer.SetBorder(false)

		for _, col := range summary.Columns {
			writer.Append([]string{
				col.Name,
				col.Dtype,
				strconv.Itoa(col.NonNull),
				strconv.Itoa(col.Missing),
				fmt.Sprintf("%.3f", col.MissingShare),
				strconv.Itoa(col.Unique),
				strings.Join(col.ExampleValues, ", "),
				fmtFloat(col.Min),
				fmtFloat(col.Max),
				fmtFloat(col.Mean),
				fmtFloat(col.Std),
			})
		}

		writer.Render()
	},
}

func init() {
	overviewCmd.Flags().StringVar(&overviewSepFlag, "sep", ",", "CSV separator")
	overviewCmd.Flags().IntVar(&overviewMaxExamplesFlag, "max-examples", dataset.DefaultExampleValues, "Example values shown per column")
	RootCmd.AddCommand(overviewCmd)
}
