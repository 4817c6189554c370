package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/go_text_normalizer/pkg/normalizer"
	"github.com/baditaflorin/l"
)

// Command-line flags
var (
	inputFile    string
	inputText    string
	outputFormat string
	verbose      bool
)

func init() {
	flag.StringVar(&inputFile, "file", "", "Path to a file whose bytes are normalized")
	flag.StringVar(&inputText, "text", "", "Text to normalize")
	flag.StringVar(&outputFormat, "output", "text", "Output format: 'text' or 'json'")
	flag.BoolVar(&verbose, "verbose", false, "Log decoding decisions to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nReads standard input when neither -file nor -text is given.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -file=app.desktop\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  printf '\\xff\\xfe' | %s -output=json\n", os.Args[0])
	}
}

// Output is the JSON form of a normalization
type Output struct {
	Text         string `json:"text"`
	Kind         string `json:"kind"`
	Replacements int    `json:"replacements"`
	FellBack     bool   `json:"fell_back"`
}

func main() {
	flag.Parse()

	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the input, normalizes it and writes the result
func run(stdin io.Reader, stdout io.Writer) error {
	if err := validateInputs(); err != nil {
		flag.Usage()
		return err
	}

	logger, err := createLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	tn, err := normalizer.New(normalizer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create normalizer: %w", err)
	}
	defer tn.Close()

	input, err := loadInput(stdin)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}

	return writeOutput(stdout, tn.Inspect(input))
}

// validateInputs validates the command-line inputs
func validateInputs() error {
	if inputFile != "" && inputText != "" {
		return errors.New("-file and -text are mutually exclusive")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("invalid output format %q", outputFormat)
	}
	return nil
}

// loadInput returns bytes for files and stdin, text for -text
func loadInput(stdin io.Reader) (interface{}, error) {
	switch {
	case inputText != "":
		return inputText, nil
	case inputFile != "":
		return os.ReadFile(inputFile)
	default:
		return io.ReadAll(stdin)
	}
}

func writeOutput(w io.Writer, result normalizer.Result) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Output{
			Text:         result.Text,
			Kind:         result.Kind,
			Replacements: result.Replacements,
			FellBack:     result.FellBack,
		})
	}

	_, err := io.WriteString(w, result.Text)
	return err
}

// createLogger logs to stderr when verbose, otherwise discards
func createLogger() (l.Logger, error) {
	var output io.Writer = io.Discard
	if verbose {
		output = os.Stderr
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     output,
		JsonFormat: false,
		AddSource:  false,
	})
}
