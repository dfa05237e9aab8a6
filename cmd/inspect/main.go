// Package main provides the inspect command-line tool for examining a saved
// leaders artifact.
package main

import (
	"flag"
	"fmt"
	"os"

	"leaderswiki/internal/config"
	"leaderswiki/internal/logger"
	"leaderswiki/internal/report"
	"leaderswiki/internal/store"
	"leaderswiki/internal/validator"
	"leaderswiki/pkg/utils"
)

func main() {
	inputPath := flag.String("input", "data/leaders.json", "Path to leaders JSON artifact")
	verify := flag.Bool("verify", false, "Verify the checksum sidecar")
	samples := flag.Int("samples", 3, "Number of sample leaders to print per country")
	flag.Parse()

	log := logger.NewLogger("info")
	st := store.NewStore(config.Default().Scraper.Output, log)

	if *verify {
		if err := st.Verify(*inputPath); err != nil {
			fmt.Printf("❌ Checksum verification failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("✅ Checksum verified")
	}

	collection, err := st.Load(*inputPath)
	if err != nil {
		fmt.Printf("❌ Failed to load artifact: %v\n", err)
		os.Exit(1)
	}

	result := validator.ValidateCollection(collection)
	if !result.IsValid() {
		fmt.Printf("⚠️  Artifact has structural problems: %s\n", result)

		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}

	fmt.Printf("📂 Artifact: %s (%d countries, %d leaders)\n\n",
		*inputPath, collection.Len(), collection.TotalLeaders())
	fmt.Print(report.SummaryTable(collection))

	if *samples > 0 {
		fmt.Println()

		for _, code := range collection.Codes() {
			leaders, _ := collection.Get(code)
			if len(leaders) == 0 {
				continue
			}

			fmt.Printf("📊 %s (first %d):\n", code, min(*samples, len(leaders)))

			for i := 0; i < *samples && i < len(leaders); i++ {
				leader := leaders[i]
				fmt.Printf("  %s (%s – %s)\n", leader.FullName(), leader.StartMandate, leader.EndMandate)

				if leader.Biography != "" {
					fmt.Printf("    %s\n", utils.TruncateString(leader.Biography, 100))
				}
			}
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\n⚠️  %d leaders without biography\n", len(result.Warnings))
	}
}
