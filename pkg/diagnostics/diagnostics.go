package diagnostics

import (
	"fmt"
	"os"
	"strings"

	"github.com/csvlab/csvlab/pkg/registry"
	"github.com/csvlab/csvlab/pkg/version"
)

func GenerateReport(datasetsDir string) (string, error) {
	body := strings.Builder{}

	body.WriteString("## Diagnostics Report\n\n")

	body.WriteString("Runtime\n")
	body.WriteString("---------------\n")
	body.WriteString(fmt.Sprintf("version: %s\n", version.Version()))
	body.WriteString(fmt.Sprintf("datasets_dir: %s\n", datasetsDir))
	body.WriteString("\n\n")

	datasets := registry.Datasets()
	body.WriteString(fmt.Sprintf("Registered Datasets (%d entries)\n", len(datasets)))
	body.WriteString("---------------\n")
	for _, dataset := range datasets {
		body.WriteString(fmt.Sprintf("%s (quality score %.2f)\n", dataset.Name, dataset.Profile.Quality.QualityScore))
	}
	body.WriteString("\n")

	dirEntries, err := os.ReadDir(datasetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return body.String(), nil
		}
		return "", err
	}

	body.WriteString(fmt.Sprintf("Datasets Directory Contents (%d entries)\n", len(dirEntries)))
	body.WriteString("---------------\n")
	for _, entry := range dirEntries {
		body.WriteString(entry.Name())
		body.WriteString("\n")
	}
	body.WriteString("\n")

	return body.String(), nil
}
