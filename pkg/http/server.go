package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/csvlab/csvlab/pkg/csv"
	"github.com/csvlab/csvlab/pkg/dataset"
	"github.com/csvlab/csvlab/pkg/diagnostics"
	"github.com/csvlab/csvlab/pkg/loggers"
	"github.com/csvlab/csvlab/pkg/profile"
	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/csvlab/csvlab/pkg/registry"
	"github.com/csvlab/csvlab/pkg/util"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port        uint
	DatasetsDir string
	Thresholds  quality.Thresholds
}

type server struct {
	config ServerConfig
}

var (
	zaplog *zap.Logger = loggers.ZapLogger()
)

func healthHandler(ctx *fasthttp.RequestCtx) {
	fmt.Fprintf(ctx, "ok")
}

// csvTableFromRequest reads the uploaded CSV, either from a
// multipart/form-data "file" field or from the raw request body. The
// separator defaults to a comma and can be overridden with ?sep=.
func csvTableFromRequest(ctx *fasthttp.RequestCtx) (*csv.Table, error) {
	sep := ','
	if sepArg := ctx.QueryArgs().Peek("sep"); len(sepArg) > 0 {
		r, size := utf8.DecodeRune(sepArg)
		if size != len(sepArg) {
			return nil, fmt.Errorf("invalid separator '%s': must be a single character", sepArg)
		}
		sep = r
	}

	contentType := string(ctx.Request.Header.ContentType())
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing multipart field 'file': %w", err)
		}
		return readMultipartCsv(fileHeader, sep)
	}

	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	return csv.ReadTable(bytes.NewReader(body), sep)
}

// csvContentFromRequest returns the raw uploaded CSV bytes, from either
// the multipart "file" field or the request body.
func csvContentFromRequest(ctx *fasthttp.RequestCtx) ([]byte, error) {
	contentType := string(ctx.Request.Header.ContentType())
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing multipart field 'file': %w", err)
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	return body, nil
}

func readMultipartCsv(fileHeader *multipart.FileHeader, sep rune) (*csv.Table, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return csv.ReadTable(file, sep)
}

func (server *server) apiQualityFlagsHandler(ctx *fasthttp.RequestCtx) {
	table, err := csvTableFromRequest(ctx)
	if err != nil {
		ctx.Response.SetStatusCode(400)
		fmt.Fprintf(ctx, "error processing csv: %s", err.Error())
		return
	}

	summary := dataset.Summarize(table, dataset.DefaultExampleValues)
	missing := dataset.MissingTable(table)
	flags := quality.Compute(summary, missing, server.config.Thresholds)

	writeJson(ctx, flags)
}

func (server *server) apiSummaryHandler(ctx *fasthttp.RequestCtx) {
	table, err := csvTableFromRequest(ctx)
	if err != nil {
		ctx.Response.SetStatusCode(400)
		fmt.Fprintf(ctx, "error processing csv: %s", err.Error())
		return
	}

	writeJson(ctx, dataset.Summarize(table, dataset.DefaultExampleValues))
}

func (server *server) apiProfileHandler(ctx *fasthttp.RequestCtx) {
	table, err := csvTableFromRequest(ctx)
	if err != nil {
		ctx.Response.SetStatusCode(400)
		fmt.Fprintf(ctx, "error processing csv: %s", err.Error())
		return
	}

	writeJson(ctx, profile.Build(table, server.config.Thresholds))
}

func apiGetDatasetsHandler(ctx *fasthttp.RequestCtx) {
	writeJson(ctx, registry.Datasets())
}

func apiGetDatasetHandler(ctx *fasthttp.RequestCtx) {
	datasetParam := ctx.UserValue("dataset").(string)
	d := registry.GetDataset(datasetParam)

	if d == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	writeJson(ctx, d)
}

func (server *server) apiPostDatasetHandler(ctx *fasthttp.RequestCtx) {
	datasetParam := ctx.UserValue("dataset").(string)
	if datasetParam == "" || strings.ContainsAny(datasetParam, "/\\") {
		ctx.Response.SetStatusCode(400)
		fmt.Fprintf(ctx, "invalid dataset name '%s'", datasetParam)
		return
	}

	content, err := csvContentFromRequest(ctx)
	if err != nil {
		ctx.Response.SetStatusCode(400)
		fmt.Fprintf(ctx, "error processing csv: %s", err.Error())
		return
	}

	// Validate before persisting so a bad upload never lands in the
	// datasets directory.
	if _, err := csv.ReadTable(bytes.NewReader(content), ','); err != nil {
		ctx.Response.SetStatusCode(400)
		fmt.Fprintf(ctx, "error processing csv: %s", err.Error())
		return
	}

	if err := os.MkdirAll(server.config.DatasetsDir, 0766); err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	path := filepath.Join(server.config.DatasetsDir, fmt.Sprintf("%s.csv", datasetParam))
	if err := util.SaveReaderToFile(bytes.NewReader(content), path); err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	d, err := registry.LoadDatasetFromFile(path, server.config.Thresholds)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}
	registry.CreateOrUpdateDataset(d)

	ctx.Response.SetStatusCode(201)
	writeJson(ctx, d)
}

func apiGetDatasetQualityHandler(ctx *fasthttp.RequestCtx) {
	datasetParam := ctx.UserValue("dataset").(string)
	d := registry.GetDataset(datasetParam)

	if d == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	writeJson(ctx, d.Profile.Quality)
}

func (server *server) apiGetDiagnosticsHandler(ctx *fasthttp.RequestCtx) {
	report, err := diagnostics.GenerateReport(server.config.DatasetsDir)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.SetBodyString(report)
}

func writeJson(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

func NewServer(port uint, datasetsDir string, thresholds quality.Thresholds) *server {
	return &server{
		config: ServerConfig{
			Port:        port,
			DatasetsDir: datasetsDir,
			Thresholds:  thresholds,
		},
	}
}

func (server *server) Start() error {
	r := router.New()
	r.GET("/health", healthHandler)
	r.GET("/docs", docsHandler)

	// The original upload endpoint stays at the root path
	r.POST("/quality-flags-from-csv", server.apiQualityFlagsHandler)

	api := r.Group("/api/v0.1")
	{
		api.POST("/quality-flags-from-csv", server.apiQualityFlagsHandler)
		api.POST("/summary-from-csv", server.apiSummaryHandler)
		api.POST("/profile-from-csv", server.apiProfileHandler)

		// Datasets
		api.GET("/datasets", apiGetDatasetsHandler)
		api.POST("/datasets/{dataset}", server.apiPostDatasetHandler)
		api.GET("/datasets/{dataset}", apiGetDatasetHandler)
		api.GET("/datasets/{dataset}/quality", apiGetDatasetQualityHandler)

		api.GET("/diagnostics", server.apiGetDiagnosticsHandler)
	}

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.Response.SetStatusCode(http.StatusNotFound)
	}

	serverLogger, err := zap.NewStdLogAt(zaplog, zap.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	fastServer := &fasthttp.Server{
		Handler: r.Handler,
		Logger:  serverLogger,
	}

	go func() {
		log.Fatal(fastServer.ListenAndServe(fmt.Sprintf(":%d", server.config.Port)))
	}()

	return nil
}
