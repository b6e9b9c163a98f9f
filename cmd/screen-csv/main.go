// Command screen-csv classifies every comment in a CSV file with the local
// lexicon and writes the enriched table.
//
//	screen-csv -in comments.csv -out moderated-comments.csv -strictness -1
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"comment-screener/internal/csvbatch"
	"comment-screener/internal/lexicon"
	"comment-screener/internal/scorer"
	"comment-screener/internal/service"
	"comment-screener/internal/threshold"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("screen-csv failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	fset := flag.NewFlagSet("screen-csv", flag.ContinueOnError)
	in := fset.String("in", "-", "input CSV file, - for stdin")
	out := fset.String("out", "-", "output CSV file, - for stdout")
	rawStrictness := fset.String("strictness", "0", "strictness from -2 (very sensitive) to 2 (very tolerant)")
	lexiconPath := fset.String("lexicon", "", "optional YAML lexicon replacing the built-in table")
	if err := fset.Parse(args); err != nil {
		return err
	}

	strictness, err := threshold.Parse(*rawStrictness)
	if err != nil {
		return err
	}

	lex := lexicon.Default()
	if *lexiconPath != "" {
		if lex, err = lexicon.Load(*lexiconPath); err != nil {
			return err
		}
	}

	raw, err := readInput(*in, stdin)
	if err != nil {
		return err
	}

	pipeline := csvbatch.NewPipeline(service.NewBuilder(scorer.New(lex)))
	res, err := pipeline.Process(raw, strictness)
	if err != nil {
		return err
	}

	if err := writeOutput(*out, stdout, res.CSV); err != nil {
		return err
	}

	logger.Info(res.Status, zap.String("in", *in), zap.String("out", *out), zap.Int("rows", res.RowCount))
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func writeOutput(path string, stdout io.Writer, content string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, content+"\n")
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
