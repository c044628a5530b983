package config

import (
	"os"
	"path"
)

var (
	appPath       string
	appCsvLabPath string
	datasetsPath  string
)

func AppPath() string {
	if appPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		appPath = cwd
	}

	return appPath
}

func AppCsvLabPath() string {
	if appCsvLabPath == "" {
		appCsvLabPath = path.Join(AppPath(), ".csvlab")
	}
	return appCsvLabPath
}

func DatasetsPath() string {
	if datasetsPath == "" {
		datasetsPath = path.Join(AppCsvLabPath(), "datasets")
	}
	return datasetsPath
}
