package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/csvlab/csvlab/pkg/runtime"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the csvlab runtime in-process",
	Example: `
csvlab serve
csvlab serve --development
`,
	Run: func(cmd *cobra.Command, args []string) {
		rt := runtime.GetCsvLabRuntime()

		err := rt.BindFlags(cmd.Flags().Lookup("development"))
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		err = rt.Run()
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		defer rt.Shutdown()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, os.Interrupt)
		<-stop
	},
}

func init() {
	serveCmd.Flags().BoolP("development", "d", false, "Watch the datasets directory for changes")
	RootCmd.AddCommand(serveCmd)
}
