package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/csvlab/csvlab/pkg/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var (
	CsvLabEnvVarPrefix string = "CSVLAB_"
)

type CsvLabConfiguration struct {
	HttpPort        uint               `json:"http_port,omitempty" mapstructure:"http_port,omitempty" yaml:"http_port,omitempty"`
	DatasetsDir     string             `json:"datasets_dir,omitempty" mapstructure:"datasets_dir,omitempty" yaml:"datasets_dir,omitempty"`
	DevelopmentMode bool               `json:"development_mode,omitempty" mapstructure:"development_mode,omitempty" yaml:"development_mode,omitempty"`
	Quality         quality.Thresholds `json:"quality,omitempty" mapstructure:"quality,omitempty" yaml:"quality,omitempty"`
}

func LoadDefaultConfiguration() *CsvLabConfiguration {
	return &CsvLabConfiguration{
		HttpPort:    8000,
		DatasetsDir: DatasetsPath(),
		Quality:     quality.DefaultThresholds(),
	}
}

func LoadRuntimeConfiguration(v *viper.Viper, appDir string) (*CsvLabConfiguration, error) {
	v.AddConfigPath(".csvlab")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	var config *CsvLabConfiguration
	configPath := ""

	if _, err := os.Stat(".csvlab/config.yaml"); err == nil {
		configPath = ".csvlab/config.yaml"
	} else if _, err := os.Stat(".csvlab/config.yml"); err == nil {
		configPath = ".csvlab/config.yml"
	}

	if configPath != "" {
		configBytes, err := util.ReplaceEnvVariablesFromPath(configPath, CsvLabEnvVarPrefix)
		if err != nil {
			return nil, err
		}

		err = v.ReadConfig(bytes.NewBuffer(configBytes))
		if err != nil {
			return nil, err
		}
	} else {
		// No config file found, use defaults
		config = LoadDefaultConfiguration()
		csvlabAppPath := filepath.Join(appDir, ".csvlab")
		configPath := filepath.Join(csvlabAppPath, "config.yaml")
		marshalledConfig, err := yaml.Marshal(config)
		if err != nil {
			return nil, err
		}

		err = os.MkdirAll(csvlabAppPath, 0766)
		if err != nil {
			return nil, fmt.Errorf("error initializing .csvlab/config.yaml: %w", err)
		}

		err = os.WriteFile(configPath, marshalledConfig, 0766)
		if err != nil {
			return nil, fmt.Errorf("error initializing .csvlab/config.yaml: %w", err)
		}

		// Wait for file flush to ensure viper.WatchConfig() works
		for i := 0; i < 10; i++ {
			_, err := os.Stat(configPath)
			if err != nil {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if err != nil {
			return nil, errors.New("error initializing .csvlab/config.yaml")
		}
	}

	v.WatchConfig()

	err := v.Unmarshal(&config)
	if err != nil {
		return nil, err
	}

	if config.DatasetsDir == "" {
		config.DatasetsDir = DatasetsPath()
	}
	applyThresholdDefaults(&config.Quality)

	return config, nil
}

// applyThresholdDefaults fills unset threshold fields so a partial
// quality block in config.yaml keeps the remaining defaults.
func applyThresholdDefaults(th *quality.Thresholds) {
	defaults := quality.DefaultThresholds()
	if th.MinRows == 0 {
		th.MinRows = defaults.MinRows
	}
	if th.MaxColumns == 0 {
		th.MaxColumns = defaults.MaxColumns
	}
	if th.MaxMissingShare == 0 {
		th.MaxMissingShare = defaults.MaxMissingShare
	}
	if th.HighCardinality == 0 {
		th.HighCardinality = defaults.HighCardinality
	}
	if th.ZeroMeanRatio == 0 {
		th.ZeroMeanRatio = defaults.ZeroMeanRatio
	}
}

func (rtConfig *CsvLabConfiguration) ServerBaseUrl() string {
	return fmt.Sprintf("http://localhost:%d", rtConfig.HttpPort)
}
