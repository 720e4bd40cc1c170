// Command extract runs the extraction pipeline against a local fact finder
// PDF and prints the merged result, for prompt and merge regression checks
// without the server or database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/common"
	"github.com/quotewise/factfinder/internal/llm/openai"
	"github.com/quotewise/factfinder/internal/pdf"
	"github.com/quotewise/factfinder/internal/pipeline"
)

func main() {
	var (
		file    = flag.String("file", "", "path to scanned fact finder PDF")
		typeArg = flag.String("type", "legacy", "insurance type: home, auto, legacy")
		pretty  = flag.Bool("pretty", true, "indent JSON output")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: extract -file fact-finder.pdf [-type home|auto|legacy]")
		os.Exit(2)
	}
	typ, ok := constants.ParseInsuranceType(*typeArg)
	if !ok {
		logger.Error("unknown insurance type", "type", *typeArg)
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read file failed", "error", err)
		os.Exit(1)
	}

	doc, err := pdf.ReadPages(data, logger)
	if err != nil {
		logger.Error("page extraction failed", "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	client := openai.NewClient(openai.Config{
		APIKey:      cfg.Vision.APIKey,
		BaseURL:     cfg.Vision.BaseURL,
		Model:       cfg.Vision.Model,
		Temperature: cfg.Vision.Temperature,
		MaxTokens:   cfg.Vision.MaxTokens,
		Timeout:     cfg.Vision.Timeout,
	}, logger)

	pipe, err := pipeline.New(client, pipeline.Options{
		BatchTimeout: cfg.Vision.BatchTimeout,
		Concurrency:  cfg.Vision.Concurrency,
	}, logger)
	if err != nil {
		logger.Error("pipeline setup failed", "error", err)
		os.Exit(1)
	}

	result, err := pipe.Run(context.Background(), typ, doc.Images)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	var out []byte
	if *pretty {
		out, err = json.MarshalIndent(result.Data(), "", "  ")
	} else {
		out, err = json.Marshal(result.Data())
	}
	if err != nil {
		logger.Error("marshal result failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
	logger.Info("extraction finished",
		"batches", result.BatchCount,
		"failed_batches", result.FailedBatches,
		"total_tokens", result.Usage.TotalTokens,
	)
}
