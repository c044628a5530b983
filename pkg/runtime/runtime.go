package runtime

import (
	"fmt"
	"log"

	"github.com/csvlab/csvlab/pkg/config"
	csvlab_http "github.com/csvlab/csvlab/pkg/http"
	"github.com/csvlab/csvlab/pkg/loggers"
	"github.com/csvlab/csvlab/pkg/registry"
	"github.com/csvlab/csvlab/pkg/version"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type CsvLabRuntime struct {
	config     *config.CsvLabConfiguration
	viper      *viper.Viper
	fileLogger *zap.Logger
}

var (
	runtime *CsvLabRuntime
	zaplog  *zap.Logger = loggers.ZapLogger()
)

func GetCsvLabRuntime() *CsvLabRuntime {
	if runtime == nil {
		runtime = &CsvLabRuntime{
			viper: viper.New(),
		}
	}
	return runtime
}

func (r *CsvLabRuntime) Config() *config.CsvLabConfiguration {
	return r.config
}

func (r *CsvLabRuntime) LoadConfig() error {
	var err error
	if r.config == nil {
		r.config, err = config.LoadRuntimeConfiguration(r.viper, config.AppPath())
	}

	return err
}

func (r *CsvLabRuntime) Run() error {
	err := r.startRuntime()
	if err != nil {
		return err
	}

	err = csvlab_http.NewServer(r.config.HttpPort, r.config.DatasetsDir, r.config.Quality).Start()
	if err != nil {
		return err
	}

	r.printStartupBanner()

	err = registry.ScanDir(r.config.DatasetsDir, r.config.Quality)
	if err != nil {
		log.Printf("error scanning for datasets: %s", err.Error())
		return err
	}

	r.logFile().Sugar().Infof("registered %d datasets from %s", len(registry.Datasets()), r.config.DatasetsDir)

	if r.config.DevelopmentMode {
		err = registry.WatchDatasets(r.config.DatasetsDir, r.config.Quality)
		if err != nil {
			zaplog.Sugar().Errorf("error watching for datasets: %s", err.Error())
			return err
		}
	}

	return nil
}

func (r *CsvLabRuntime) BindFlags(developmentFlag *pflag.Flag) error {
	err := r.viper.BindPFlag("development_mode", developmentFlag)
	if err != nil {
		return err
	}
	return nil
}

func (r *CsvLabRuntime) Shutdown() {
	log.Println("Shutting down...")

	if r.fileLogger != nil {
		_ = r.fileLogger.Sync()
	}
	loggers.ZapLoggerSync()
}

func (r *CsvLabRuntime) printStartupBanner() {
	fmt.Printf("- Runtime version: %s\n", version.Version())
	if r.config.DevelopmentMode {
		fmt.Print("- ")
		fmt.Println(aurora.Yellow("Development mode"))
	}
	fmt.Print("- ")
	fmt.Println(aurora.Green(fmt.Sprintf("Listening on http://localhost:%d", r.config.HttpPort)))
	fmt.Print("- ")
	fmt.Println(aurora.BrightCyan(fmt.Sprintf("API docs at http://localhost:%d/docs", r.config.HttpPort)))
	fmt.Println()
	fmt.Println("Use Ctrl-C to stop")
}

func (r *CsvLabRuntime) startRuntime() error {
	err := r.LoadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Loading csvlab runtime ...")

	return nil
}

// logFile lazily opens the daemon's file logger; failures fall back to
// the shared zap logger.
func (r *CsvLabRuntime) logFile() *zap.Logger {
	if r.fileLogger != nil {
		return r.fileLogger
	}

	fileLogger, err := loggers.NewFileLogger("csvlabd", config.AppCsvLabPath())
	if err != nil {
		zaplog.Sugar().Debugf("failed to create file logger: %s", err.Error())
		return zaplog
	}

	r.fileLogger = fileLogger
	return r.fileLogger
}
