package util

import (
	"os"
	"strings"
)

var (
	isDebug *bool
)

func IsDebug() bool {
	if isDebug == nil {
		csvlabDebug := os.Getenv("CSVLAB_DEBUG")
		d := csvlabDebug == "1" || strings.EqualFold(csvlabDebug, "true")
		isDebug = &d
	}

	return *isDebug
}
