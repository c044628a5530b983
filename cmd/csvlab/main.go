package main

import (
	"github.com/csvlab/csvlab/pkg/cli/cmd"
)

func main() {
	cmd.Execute()
}
