// Package main provides the scraper command that runs the full pipeline:
// fetch countries, fetch leaders per country, enrich each leader with a
// Wikipedia biography, and persist the result as a JSON artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"leaderswiki/internal/config"
	"leaderswiki/internal/leadersapi"
	"leaderswiki/internal/logger"
	"leaderswiki/internal/pipeline"
	"leaderswiki/internal/report"
	"leaderswiki/internal/store"
	"leaderswiki/internal/wiki"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file")
	output := flag.String("output", "", "Output JSON file path (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		cfg.Scraper.Output.Path = *output
	}

	log := logger.NewLogger(cfg.Scraper.Logging.Level)
	ctx := context.Background()

	printHeader(cfg)

	startTime := time.Now()

	// 1. Session
	// ----------
	log.Info("🔐 Phase 1: Session (status check and cookie)...")

	session, err := leadersapi.NewSession(cfg.Scraper.API, cfg.Scraper.Retry, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Session setup failed: %v", err))
		os.Exit(1)
	}

	if err := session.Status(ctx); err != nil {
		log.Error(fmt.Sprintf("❌ Leaders API is not reachable: %v", err))
		os.Exit(1)
	}

	if _, err := session.Cookie(ctx); err != nil {
		log.Error(fmt.Sprintf("❌ Could not acquire session cookie: %v", err))
		os.Exit(1)
	}

	// 2. Aggregation
	// --------------
	log.Info("🌍 Phase 2: Aggregation (countries, leaders, biographies)...")

	client := leadersapi.NewClient(session, log)
	extractor := wiki.NewExtractor(cfg.Scraper.Wikipedia, log)
	aggregator := pipeline.NewAggregator(client, extractor, log)

	collection, err := aggregator.Build(ctx)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Aggregation failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Aggregated %d leaders across %d countries in %v",
		collection.TotalLeaders(), collection.Len(), time.Since(startTime).Round(time.Millisecond)))

	// 3. Persistence
	// --------------
	log.Info("📝 Phase 3: Persistence...")

	st := store.NewStore(cfg.Scraper.Output, log)
	if err := st.Save(collection, cfg.Scraper.Output.Path); err != nil {
		log.Error(fmt.Sprintf("❌ Save failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Saved to: %s", cfg.Scraper.Output.Path))

	// 4. Final report: read the artifact back and print its countries.
	// ----------------------------------------------------------------
	saved, err := st.Load(cfg.Scraper.Output.Path)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Could not read artifact back: %v", err))
		os.Exit(1)
	}

	fmt.Println("\n------------------------------------------------")
	fmt.Println("📊 Countries in saved output")
	fmt.Println("------------------------------------------------")

	for _, code := range saved.Codes() {
		fmt.Println(code)
	}

	fmt.Println()
	fmt.Print(report.SummaryTable(saved))
	fmt.Printf("\nTotal duration: %v\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Println("\n✨ Scraping complete!")
}

// loadConfig resolves the configuration: explicit file, default file location,
// or built-in defaults.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", configFile)

		return config.LoadConfig(configFile)
	}

	defaultConfig := "configs/scraper.yaml"
	if _, statErr := os.Stat(defaultConfig); statErr == nil {
		fmt.Printf("⚙️  Loading default configuration: %s\n", defaultConfig)

		return config.LoadConfig(defaultConfig)
	}

	fmt.Println("⚙️  Using built-in defaults")

	return config.Default(), nil
}

func printHeader(cfg *config.Config) {
	fmt.Println("🕷️  Country Leaders Scraper")
	fmt.Printf("API: %s\n", cfg.Scraper.API.BaseURL)
	fmt.Printf("Retry policy: max %d attempts, %.1fx backoff\n",
		cfg.Scraper.Retry.MaxAttempts,
		cfg.Scraper.Retry.BackoffMultiplier)
	fmt.Printf("Output: %s\n", cfg.Scraper.Output.Path)
	fmt.Println()
}

func printUsage() {
	fmt.Println("Usage: ./bin/scraper [OPTIONS]")
	fmt.Println()
	fmt.Println("Runs the full pipeline end-to-end and prints the countries present")
	fmt.Println("in the saved output.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/scraper")
	fmt.Println("  ./bin/scraper -config configs/scraper.yaml")
	fmt.Println("  ./bin/scraper -output data/leaders.json")
}
