package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/scraper"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:       "scrape [checkins|taps|all]",
	Short:     "Fetch the upstream pages once and print the extracted JSON",
	Long:      `Fetches the configured check-in feed and/or tap list page, runs the extractors and prints the records. Nothing is stored.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"checkins", "taps", "all"},
	Run: func(cmd *cobra.Command, args []string) {
		target := "all"
		if len(args) == 1 {
			target = args[0]
		}
		if err := runScrape(cmd.Context(), target, cmd.OutOrStdout()); err != nil {
			log.Fatalf("Scraping failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(ctx context.Context, target string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Load Config
	appCfg, err := config.GetAppConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	siteCfg, err := config.LoadSiteConfig(appCfg.ConfigPath)
	if err != nil {
		return err
	}

	// 2. Fetcher
	fetcher, err := scraper.NewFetcher(appCfg.FetchMode, siteCfg)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	// 3. Run the pipelines
	svc := scraper.NewService(fetcher, siteCfg, nil)
	var result any
	switch kind, _ := models.ParseKind(target); kind {
	case models.KindCheckins:
		result, err = svc.FetchCheckins(ctx)
	case models.KindTaps:
		result, err = svc.FetchTaps(ctx)
	default:
		result, err = svc.FetchAll(ctx)
	}
	if err != nil {
		return err
	}

	return printJSON(out, result)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
