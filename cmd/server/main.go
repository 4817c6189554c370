package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_text_normalizer/pkg/normalizer"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means fasthttp's default
)

var (
	// Text normalizer shared by all handlers
	textNormalizer *normalizer.TextNormalizer

	// Logger instance
	logger l.Logger
)

// NormalizeRequest carries a single value to normalize.
// Bytes is base64 in JSON and takes precedence over Value.
type NormalizeRequest struct {
	Value json.RawMessage `json:"value,omitempty"`
	Bytes []byte          `json:"bytes,omitempty"`
}

// NormalizeResponse represents a normalization response
type NormalizeResponse struct {
	Text           string                 `json:"text"`
	Kind           string                 `json:"kind"`
	Replacements   int                    `json:"replacements"`
	FellBack       bool                   `json:"fell_back"`
	ProcessingTime string                 `json:"processing_time,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// LocalizedRequest carries a locale-keyed value
type LocalizedRequest struct {
	Values map[string]interface{} `json:"values"`
}

// LocalizedResponse represents a localized normalization response
type LocalizedResponse struct {
	Values       map[string]string `json:"values"`
	Untranslated string            `json:"untranslated"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = fasthttp default)")
	warmUp := flag.Bool("warm-up", true, "Warm up the normalizer on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting text normalizer HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	if err := initNormalizer(*warmUp); err != nil {
		logger.Error("Failed to initialize normalizer", "error", err)
		os.Exit(1)
	}

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Name:                  "TextNormalizer",
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initNormalizer creates the shared normalizer, optionally warming it up
func initNormalizer(warmUp bool) error {
	opts := []normalizer.Option{
		normalizer.WithLogger(logger),
	}
	if warmUp {
		wc := normalizer.DefaultWarmUpConfig()
		wc.Duration = 2 * time.Second
		opts = append(opts, normalizer.WithWarmUpConfig(wc))
	}

	var err error
	textNormalizer, err = normalizer.New(opts...)
	if err != nil {
		return err
	}

	logger.Info("Normalizer initialized",
		"warm_up", textNormalizer.IsWarmedUp(),
		"cpus", runtime.NumCPU(),
	)
	return nil
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/normalize":
		handleNormalize(ctx)
	case "/normalize/raw":
		handleNormalizeRaw(ctx)
	case "/localized":
		handleLocalized(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleNormalize normalizes a JSON value or base64 byte sequence
func handleNormalize(ctx *fasthttp.RequestCtx) {
	if !requirePost(ctx) {
		return
	}

	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	var value interface{}
	switch {
	case req.Bytes != nil:
		value = req.Bytes
	case len(req.Value) > 0:
		v, err := decodeJSONValue(req.Value)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			writeJSONError(ctx, "Invalid value: "+err.Error())
			return
		}
		value = v
	default:
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Either value or bytes is required")
		return
	}

	writeResult(ctx, value)
}

// handleNormalizeRaw normalizes the request body itself
func handleNormalizeRaw(ctx *fasthttp.RequestCtx) {
	if !requirePost(ctx) {
		return
	}
	writeResult(ctx, ctx.PostBody())
}

// handleLocalized normalizes every entry of a locale-keyed value
func handleLocalized(ctx *fasthttp.RequestCtx) {
	if !requirePost(ctx) {
		return
	}

	dec := json.NewDecoder(bytes.NewReader(ctx.PostBody()))
	dec.UseNumber()

	var req LocalizedRequest
	if err := dec.Decode(&req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Values) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "At least one localized value is required")
		return
	}

	values := textNormalizer.NormalizeLocalized(req.Values)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, LocalizedResponse{
		Values:       values,
		Untranslated: values.Untranslated(),
	})
}

// Helper functions

// writeResult normalizes value and writes the diagnostic response
func writeResult(ctx *fasthttp.RequestCtx, value interface{}) {
	start := time.Now()
	result := textNormalizer.Inspect(value)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, NormalizeResponse{
		Text:           result.Text,
		Kind:           result.Kind,
		Replacements:   result.Replacements,
		FellBack:       result.FellBack,
		ProcessingTime: time.Since(start).String(),
		Details:        result.Details,
	})
}

// decodeJSONValue decodes raw JSON keeping numbers in their literal form
func decodeJSONValue(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// requirePost rejects anything but POST and reports whether to continue
func requirePost(ctx *fasthttp.RequestCtx) bool {
	if ctx.IsPost() {
		return true
	}
	ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	writeJSONError(ctx, "Method not allowed")
	return false
}

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
