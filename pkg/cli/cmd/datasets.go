package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/csvlab/csvlab/pkg/config"
	csvlab_http "github.com/csvlab/csvlab/pkg/http"
	"github.com/csvlab/csvlab/pkg/registry"
	"github.com/csvlab/csvlab/pkg/util"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Work with datasets registered in the runtime",
	Example: `
csvlab datasets list
csvlab datasets add data.csv
`,
}

var datasetsAddCmd = &cobra.Command{
	Use:   "add <csv-file>",
	Short: "Uploads a CSV file to the runtime and registers it as a dataset",
	Args:  cobra.ExactArgs(1),
	Example: `
csvlab datasets add data.csv
`,
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.Printf("file '%s' not found\n", path)
			return
		}

		v := viper.New()
		runtimeConfig, err := config.LoadRuntimeConfiguration(v, config.AppPath())
		if err != nil {
			cmd.Println("failed to load runtime configuration")
			return
		}

		serverBaseUrl := runtimeConfig.ServerBaseUrl()

		err = util.IsRuntimeServerHealthy(serverBaseUrl, http.DefaultClient)
		if err != nil {
			cmd.Printf("failed to reach %s. is the csvlab runtime running?\n", serverBaseUrl)
			return
		}

		name := registry.DatasetName(path)
		addUrl := fmt.Sprintf("%s/api/v0.1/datasets/%s", serverBaseUrl, name)

		response, err := csvlab_http.Post(addUrl, "text/csv", content)
		if err != nil {
			cmd.Printf("failed to upload dataset to runtime: %s\n", err.Error())
			return
		}
		defer response.Body.Close()

		if response.StatusCode != 201 {
			body, _ := io.ReadAll(response.Body)
			cmd.Printf("failed to upload dataset to runtime: %s\n", string(body))
			return
		}

		cmd.Printf("dataset '%s' registered\n", name)
	},
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists datasets currently registered in the runtime",
	Example: `
csvlab datasets list
`,
	Run: func(cmd *cobra.Command, args []string) {
		v := viper.New()
		runtimeConfig, err := config.LoadRuntimeConfiguration(v, config.AppPath())
		if err != nil {
			cmd.Println("failed to load runtime configuration")
			return
		}

		serverBaseUrl := runtimeConfig.ServerBaseUrl()

		err = util.IsRuntimeServerHealthy(serverBaseUrl, http.DefaultClient)
		if err != nil {
			cmd.Printf("failed to reach %s. is the csvlab runtime running?\n", serverBaseUrl)
			return
		}

		listUrl := fmt.Sprintf("%s/api/v0.1/datasets", serverBaseUrl)

		response, err := csvlab_http.Get(listUrl, "application/json")
		if err != nil {
			cmd.Printf("failed to get datasets from runtime: %s\n", err.Error())
			return
		}
		defer response.Body.Close()

		if response.StatusCode != 200 {
			cmd.Printf("failed to get datasets from runtime: %s\n", response.Status)
			return
		}

		body, err := io.ReadAll(response.Body)
		if err != nil {
			cmd.Printf("failed to get datasets from runtime: %s\n", err.Error())
			return
		}

		var datasets []registry.Dataset
		err = json.Unmarshal(body, &datasets)
		if err != nil {
			cmd.Printf("failed to get datasets from runtime: %s\n", err.Error())
			return
		}

		if len(datasets) == 0 {
			cmd.Println("no datasets registered")
			return
		}

		writer := tablewriter.NewWriter(os.Stdout)
		writer.SetHeader([]string{"name", "rows", "columns", "quality score"})
		writer.SetBorder(false)

		for _, d := range datasets {
			writer.Append([]string{
				d.Name,
				strconv.Itoa(d.Profile.Summary.NRows),
				strconv.Itoa(d.Profile.Summary.NCols),
				fmt.Sprintf("%.2f", d.Profile.Quality.QualityScore),
			})
		}

		writer.Render()
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsAddCmd)
	RootCmd.AddCommand(datasetsCmd)
}
