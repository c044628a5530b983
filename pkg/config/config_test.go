package config_test

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/csvlab/csvlab/pkg/config"
	"github.com/csvlab/csvlab/pkg/testutils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	testConfigPath := "../../test/assets/config/config.yaml"
	testConfigPathWithEnvVars := "../../test/assets/config/config_with_env_vars.yaml"
	t.Cleanup(testutils.CleanupTestCsvLabDirectory)
	t.Run("LoadRuntimeConfiguration() - Config loads correctly", testRuntimeConfigLoads(testConfigPath))
	testutils.CleanupTestCsvLabDirectory()
	t.Run("LoadRuntimeConfiguration() - Environment variables in config are replaced", testRuntimeConfigReplacesEnvironmentVariables(testConfigPathWithEnvVars))
}

// Tests configuration loads correctly
func testRuntimeConfigLoads(testConfigPath string) func(*testing.T) {
	return func(t *testing.T) {
		testutils.EnsureTestCsvLabDirectory(t)

		tempConfigPath := filepath.Join(".csvlab", "config.yaml")
		copyFile(testConfigPath, tempConfigPath)

		viper := viper.New()
		csvlabConfiguration, err := config.LoadRuntimeConfiguration(viper, config.AppPath())
		if err != nil {
			t.Error(err)
			return
		}

		assert.Equal(t, uint(8000), csvlabConfiguration.HttpPort)
		assert.Equal(t, filepath.Join(".csvlab", "datasets"), csvlabConfiguration.DatasetsDir)
		assert.Equal(t, 100, csvlabConfiguration.Quality.MinRows)
		assert.Equal(t, 0.5, csvlabConfiguration.Quality.MaxMissingShare)
	}
}

// Tests configuration replaces environment variables correctly
func testRuntimeConfigReplacesEnvironmentVariables(testConfigPath string) func(*testing.T) {
	return func(t *testing.T) {
		testutils.EnsureTestCsvLabDirectory(t)

		// Go 1.17 includes a Setenv on the testing pkg, but for now we will just set/unset with the os package
		testEnvVar := "CSVLAB_DATASETS_DIR_TO_REPLACE"
		if os.Getenv(testEnvVar) != "" {
			t.Errorf("%s must not be set during tests", testEnvVar)
		}

		expected := "replacedvalue"
		os.Setenv(testEnvVar, expected)

		tempConfigPath := filepath.Join(".csvlab", "config.yaml")
		copyFile(testConfigPath, tempConfigPath)

		viper := viper.New()
		csvlabConfiguration, err := config.LoadRuntimeConfiguration(viper, config.AppPath())
		if err != nil {
			t.Error(err)
			os.Unsetenv(testEnvVar)
			return
		}

		actual := csvlabConfiguration.DatasetsDir
		if !assert.Equal(t, expected, actual) {
			t.Errorf("Expected:\n%v\nGot:\n%v", expected, actual)
		}

		os.Unsetenv(testEnvVar)
	}
}

func copyFile(fromPath string, toPath string) {
	from, err := os.Open(fromPath)
	if err != nil {
		log.Fatal(err)
	}
	defer from.Close()

	to, err := os.OpenFile(toPath, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		log.Fatal(err)
	}
	defer to.Close()

	_, err = io.Copy(to, from)
	if err != nil {
		log.Fatal(err)
	}
}
