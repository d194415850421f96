package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"carworks/caranalyzer/internal/scraper"
	"carworks/caranalyzer/pkg/logger"
)

var scrapeURLsFile string

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url...]",
	Short: "Scrape listing pages and save the raw tables",
	Long: `Scrape fetches carsensor search-result pages, one row per listed
vehicle, and saves CSV and XLSX snapshots under the data directory. URLs
come from the arguments or, when none are given, from the URL list file.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeURLsFile, "urls", "", "file listing target URLs (one per line)")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := logger.New("scraper")

	urls := args
	if len(urls) == 0 {
		path := scrapeURLsFile
		if path == "" {
			path = cfg.Paths.URLsFile
		}
		var err error
		urls, err = scraper.ReadURLList(path)
		if err != nil {
			return err
		}
	}
	if len(urls) == 0 {
		return fmt.Errorf("no target URLs given")
	}

	scanner := scraper.New(nil, log, scraper.Options{
		MaxPages:     cfg.Scraper.MaxPages,
		ItemsPerPage: cfg.Scraper.ItemsPerPage,
		Delay:        time.Duration(cfg.Scraper.DelaySeconds) * time.Second,
		UserAgent:    cfg.Scraper.UserAgent,
	})

	ctx := cmd.Context()
	for i, target := range urls {
		table, carName, err := scanner.Scrape(ctx, target)
		if err != nil {
			log.Printf("scrape %s failed: %v", target, err)
			continue
		}
		if len(table.Rows) == 0 {
			log.Printf("no listings found at %s", target)
			continue
		}
		saved, err := scraper.SaveTable(cfg.Paths.DataDir, carName, table)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d listings -> %s\n", carName, len(table.Rows), saved)

		if i < len(urls)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
		}
	}
	return nil
}
