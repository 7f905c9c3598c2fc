package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/MichaelStober/EventViewer/internal/common"
	"github.com/MichaelStober/EventViewer/internal/detect"
	"github.com/MichaelStober/EventViewer/internal/event"
	"github.com/MichaelStober/EventViewer/internal/export"
	"github.com/MichaelStober/EventViewer/internal/ingest"
	"github.com/MichaelStober/EventViewer/internal/llm/anthropic"
	"github.com/MichaelStober/EventViewer/internal/merge"
	"github.com/MichaelStober/EventViewer/internal/pipeline"
	"github.com/MichaelStober/EventViewer/internal/scrape"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		image         = flag.String("image", "", "single poster image to analyze")
		batch         = flag.String("batch", "", "directory containing poster images")
		apiKey        = flag.String("api-key", "", "Anthropic API key (or set ANTHROPIC_API_KEY)")
		output        = flag.String("output", "", "output directory for results (optional)")
		maxConcurrent = flag.Int("max-concurrent", 0, "maximum concurrent poster analyses (default 3)")
		noScrape      = flag.Bool("no-scrape", false, "disable web scraping enrichment")
		verbose       = flag.Bool("verbose", false, "enable verbose logging")
	)
	flag.Parse()

	if (*image == "") == (*batch == "") {
		printError("Error: exactly one of --image or --batch is required\n")
		os.Exit(1)
	}

	// Setup logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration, with CLI flags taking precedence
	cfg := common.LoadConfig()
	if *apiKey != "" {
		cfg.LLM.APIKey = *apiKey
	}
	if *maxConcurrent > 0 {
		cfg.Batch.MaxConcurrent = *maxConcurrent
	}
	if *noScrape {
		cfg.Scrape.Enabled = false
	}
	if *output != "" {
		cfg.Batch.OutputDir = *output
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	path := *image
	if path == "" {
		path = *batch
	}
	images, err := ingest.CollectImages(path)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire pipeline components
	client := anthropic.NewClient(anthropic.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	analyzer := pipeline.NewAnalyzer(
		logger,
		detect.NewDetector(logger),
		client,
		scrape.NewFetcher(cfg.Scrape, logger),
		merge.NewEngine(logger),
		cfg.Scrape.Enabled,
	)

	// Confirm the credential before doing any real work.
	keyCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = client.ValidateKey(keyCtx)
	cancel()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	results := analyzer.AnalyzeBatch(ctx, images, cfg.Batch.MaxConcurrent)

	if ctx.Err() != nil {
		printError("Error: analysis interrupted\n")
		os.Exit(1)
	}

	for _, res := range results {
		printSummary(res.Record)
	}
	fmt.Printf("Successful: %d/%d\n", len(results), len(images))

	if cfg.Batch.OutputDir != "" {
		if err := writeResults(logger, results, len(images), cfg.Batch.OutputDir); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results saved to: %s\n", cfg.Batch.OutputDir)
	}

	if len(results) == 0 {
		printError("Error: no event data extracted\n")
		os.Exit(1)
	}
}

func printSummary(rec *event.Record) {
	venue := "N/A"
	if rec.Location.Venue != nil {
		venue = *rec.Location.Venue
	}
	date := "N/A"
	if rec.Schedule.Start != nil {
		date = rec.Schedule.Start.Format("02.01.2006 15:04")
	}
	price := "N/A"
	if rec.Pricing.Free {
		price = "Kostenlos"
	} else if rec.Pricing.Price != nil {
		price = fmt.Sprintf("%.2f %s", *rec.Pricing.Price, rec.Pricing.Currency)
	}
	fmt.Printf("Event: %s | Ort: %s | Datum: %s | Preis: %s | Kategorie: %s | Konfidenz: %.2f\n",
		rec.Name, venue, date, price, rec.Category, rec.Metadata.Confidence)
}

// writeResults exports one JSON and CSV per record (named after its poster),
// the batch summary, and an XLSX workbook.
func writeResults(logger *slog.Logger, results []pipeline.BatchResult, attempted int, outDir string) error {
	svc := export.NewService(logger)

	records := make([]*event.Record, 0, len(results))
	for _, res := range results {
		stem := strings.TrimSuffix(filepath.Base(res.Path), filepath.Ext(res.Path))
		if err := svc.WriteJSON(res.Record, filepath.Join(outDir, stem+"_analysis.json")); err != nil {
			return err
		}
		if err := svc.WriteCSV(res.Record, filepath.Join(outDir, stem+"_analysis.csv")); err != nil {
			return err
		}
		records = append(records, res.Record)
	}
	if err := svc.WriteBatchSummary(records, attempted, filepath.Join(outDir, "batch_summary.json")); err != nil {
		return err
	}
	return svc.WriteXLSX(records, filepath.Join(outDir, "events.xlsx"))
}
