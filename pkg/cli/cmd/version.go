package cmd

import (
	"fmt"

	"github.com/csvlab/csvlab/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "csvlab CLI version",
	Example: `
csvlab version
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("CLI version: %s\n", version.Version())
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
