package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/csvlab/csvlab/pkg/runtime"
	"github.com/csvlab/csvlab/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

var RootCmd = &cobra.Command{
	Use:   "csvlabd",
	Short: "csvlab Runtime",
	Run: func(cmd *cobra.Command, args []string) {
		rt := runtime.GetCsvLabRuntime()

		err := rt.BindFlags(cmd.Flags().Lookup("development"))
		if err != nil {
			log.Fatalln(err)
		}

		err = rt.Run()
		if err != nil {
			log.Fatalln(err)
		}
		defer rt.Shutdown()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, os.Interrupt)
		<-stop
	},
}

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version())
	},
}

func init() {
	RootCmd.Flags().BoolP("development", "d", false, "Watch the datasets directory for changes")
	RootCmd.AddCommand(VersionCmd)
}
